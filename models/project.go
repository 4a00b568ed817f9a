package models

// Project is one showcase entry. JSON field names are the persisted contract of
// the project collection key and must not change.
type Project struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Thumbnail       string   `json:"thumbnail"`
	Images          []string `json:"images"`
	Tags            []string `json:"tags"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	DemoURL         string   `json:"demoUrl,omitempty"`
	CreatedAt       int64    `json:"createdAt"` // unix milliseconds
}

// DefaultThumbnail is used when the edit form leaves the thumbnail empty.
const DefaultThumbnail = "https://picsum.photos/800/600"

// SaveProjectRequest is the payload of the admin create/update endpoints.
// Only the title is checked; every other field is stored as given.
type SaveProjectRequest struct {
	Title           string   `json:"title" form:"title" binding:"required"`
	Description     string   `json:"description" form:"description"`
	LongDescription string   `json:"longDescription" form:"longDescription"`
	Thumbnail       string   `json:"thumbnail" form:"thumbnail"`
	Images          []string `json:"images" form:"-"`
	Tags            []string `json:"tags" form:"-"`
	GithubURL       string   `json:"githubUrl" form:"githubUrl"`
	DemoURL         string   `json:"demoUrl" form:"demoUrl"`
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}

// ToProject builds the record to store. An empty thumbnail gets DefaultThumbnail.
func (r SaveProjectRequest) ToProject(id string, createdAt int64) Project {
	thumb := r.Thumbnail
	if thumb == "" {
		thumb = DefaultThumbnail
	}
	images := r.Images
	if images == nil {
		images = []string{}
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return Project{
		ID:              id,
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Thumbnail:       thumb,
		Images:          images,
		Tags:            tags,
		GithubURL:       r.GithubURL,
		DemoURL:         r.DemoURL,
		CreatedAt:       createdAt,
	}
}
