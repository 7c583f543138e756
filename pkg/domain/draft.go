package domain

import "time"

// Draft is a generated article persisted locally, with publish tracking
// once it lands in the CMS.
type Draft struct {
	ID              int64
	Topic           string
	Title           string
	Body            string
	Category        string
	Keywords        []string
	MetaDescription string
	AIGenerated     bool
	PostID          int64  // CMS post id, 0 until published
	PostLink        string // CMS permalink, empty until published
	CreatedAt       time.Time
}

// Published reports whether the draft has been pushed to the CMS
func (d Draft) Published() bool { return d.PostID != 0 }
