package database

type Pages struct {
	Current int  `json:"current"`
	Prev    int  `json:"prev"`
	HasPrev bool `json:"hasPrev"`
	Next    int  `json:"next"`
	HasNext bool `json:"hasNext"`
	Total   int  `json:"total"`
}

type Items struct {
	Limit int `json:"limit"`
	Begin int `json:"begin"`
	End   int `json:"end"`
	Total int `json:"total"`
}

// Paged is the shape every paginated query returns: the data page plus
// page and item bookkeeping. A page past the end yields empty Data with
// accurate totals, never an error.
type Paged[T any] struct {
	Data  []T   `json:"data"`
	Pages Pages `json:"pages"`
	Items Items `json:"items"`
}

// NewPaged computes the page/item bookkeeping for a data page. page and
// limit are 1-based and positive, total is the full matching count.
func NewPaged[T any](data []T, page, limit, total int) Paged[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	begin := (page-1)*limit + 1
	end := page * limit
	if end > total {
		end = total
	}
	if begin > total {
		begin = 0
		end = 0
	}
	return Paged[T]{
		Data: data,
		Pages: Pages{
			Current: page,
			Prev:    page - 1,
			HasPrev: page > 1,
			Next:    page + 1,
			HasNext: page+1 <= totalPages,
			Total:   totalPages,
		},
		Items: Items{
			Limit: limit,
			Begin: begin,
			End:   end,
			Total: total,
		},
	}
}
