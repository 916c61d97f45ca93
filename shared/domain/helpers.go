package domain

import (
	"fmt"
	"time"
)

// SummaryLen is how many characters of post text are shown in summary
// contexts (listings, String()).
const SummaryLen = 15

// Summary returns the first SummaryLen characters of the post text.
// Shorter texts are returned whole.
func (p *Post) Summary() string {
	runes := []rune(p.Text)
	if len(runes) <= SummaryLen {
		return p.Text
	}
	return string(runes[:SummaryLen])
}

// for debug
func (p *Post) String() string {
	group := "<none>"
	if p.Group != nil {
		group = p.Group.Slug
	}
	return fmt.Sprintf("[id:%d, author:%s, text:%s, pub_date:%s, group:%s]",
		p.Id, p.Author.Username, p.Summary(), p.PubDate.Format(time.StampMilli), group)
}

func (g *Group) String() string {
	return g.Title
}
