package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type Config struct {
	Port            string
	Env             string // either prod or dev, will disable https redirect and few other bits
	MongoURI        string
	MongoDBName     string
	SessionKey      []byte
	JwtSigningKey   []byte
	AdminEmail      string // receives new application notifications
	NoReplyEmail    string // used for transactional emails
	EmailAPIKey     string
	SentryDSN       string
	S3AccessKeyID   string
	S3SecretKey     string
	S3Region        string
	S3Bucket        string
	S3Endpoint      string // optional, set for S3-compatible services
	ListingsPerPage int    // default page size for paged results
	SiteName        string
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI cannot be empty")
	}
	mongoDBName := os.Getenv("MONGODB_DB_NAME")
	if mongoDBName == "" {
		return Config{}, fmt.Errorf("MONGODB_DB_NAME cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKey)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return Config{}, fmt.Errorf("ADMIN_EMAIL cannot be empty")
	}
	noReplyEmail := os.Getenv("NO_REPLY_EMAIL")
	if noReplyEmail == "" {
		return Config{}, fmt.Errorf("NO_REPLY_EMAIL cannot be empty")
	}
	emailAPIKey := os.Getenv("EMAIL_API_KEY")
	if emailAPIKey == "" {
		return Config{}, fmt.Errorf("EMAIL_API_KEY cannot be empty")
	}
	s3AccessKeyID := os.Getenv("S3_ACCESS_KEY_ID")
	if s3AccessKeyID == "" {
		return Config{}, fmt.Errorf("S3_ACCESS_KEY_ID cannot be empty")
	}
	s3SecretKey := os.Getenv("S3_SECRET_ACCESS_KEY")
	if s3SecretKey == "" {
		return Config{}, fmt.Errorf("S3_SECRET_ACCESS_KEY cannot be empty")
	}
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		return Config{}, fmt.Errorf("S3_REGION cannot be empty")
	}
	s3Bucket := os.Getenv("S3_BUCKET")
	if s3Bucket == "" {
		return Config{}, fmt.Errorf("S3_BUCKET cannot be empty")
	}
	s3Endpoint := os.Getenv("S3_ENDPOINT")
	sentryDSN := os.Getenv("SENTRY_DSN")
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		siteName = "Enshire"
	}

	return Config{
		Port:            port,
		Env:             env,
		MongoURI:        mongoURI,
		MongoDBName:     mongoDBName,
		SessionKey:      sessionKeyBytes,
		JwtSigningKey:   jwtSigningKeyBytes,
		AdminEmail:      adminEmail,
		NoReplyEmail:    noReplyEmail,
		EmailAPIKey:     emailAPIKey,
		SentryDSN:       sentryDSN,
		S3AccessKeyID:   s3AccessKeyID,
		S3SecretKey:     s3SecretKey,
		S3Region:        s3Region,
		S3Bucket:        s3Bucket,
		S3Endpoint:      s3Endpoint,
		ListingsPerPage: 20,
		SiteName:        siteName,
	}, nil
}
