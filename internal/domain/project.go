package domain

import "time"

// Project is a portfolio entry. Photos are ordered by creation time
// ascending, insertion order breaking ties.
type Project struct {
	ID          int64
	Name        string
	URL         string
	Description *string
	Active      bool
	CreatedAt   time.Time
	Photos      []Photo
}

// Photo references a stored binary object by name. The content itself lives
// in the file store; only the generated name is persisted here.
type Photo struct {
	ID        int64
	ProjectID int64
	Name      string
	CreatedAt time.Time
}

// CoverPhoto returns the earliest photo, the one shown in list views.
// Returns nil when the project has no photos.
func (p *Project) CoverPhoto() *Photo {
	if len(p.Photos) == 0 {
		return nil
	}
	cover := &p.Photos[0]
	for i := range p.Photos[1:] {
		if p.Photos[i+1].CreatedAt.Before(cover.CreatedAt) {
			cover = &p.Photos[i+1]
		}
	}
	return cover
}
