package projects

import (
	"time"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/domain"
)

// PhotoView is the outward shape of a stored photo.
type PhotoView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProjectView is the outward shape of a project. CoverPhoto is the
// earliest photo, the one list views display.
type ProjectView struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Description *string     `json:"description"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"createdAt"`
	CoverPhoto  *PhotoView  `json:"coverPhoto"`
	Photos      []PhotoView `json:"photos"`
}

func newProjectView(p *domain.Project, files ports.FileStore) ProjectView {
	view := ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		URL:         p.URL,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		Photos:      make([]PhotoView, 0, len(p.Photos)),
	}
	for _, photo := range p.Photos {
		view.Photos = append(view.Photos, PhotoView{Name: photo.Name, URL: files.URL(photo.Name)})
	}
	if cover := p.CoverPhoto(); cover != nil {
		view.CoverPhoto = &PhotoView{Name: cover.Name, URL: files.URL(cover.Name)}
	}
	return view
}
