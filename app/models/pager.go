package models

// Pager is a paged view over a filtered, ordered expense set.
type Pager struct {
	Items      []*Expense `json:"items"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalCount int        `json:"total_count"`
}

// PageCount is the number of pages needed to show TotalCount items.
func (p *Pager) PageCount() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.TotalCount + p.Limit - 1) / p.Limit
}

func (p *Pager) HasPrev() bool {
	return p.Page > 1
}

func (p *Pager) HasNext() bool {
	return p.Page < p.PageCount()
}

func (p *Pager) PrevPage() int {
	return p.Page - 1
}

func (p *Pager) NextPage() int {
	return p.Page + 1
}
