package types

type GalleryItem struct {
	Post     PostView `json:"post"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	AgeGroup string   `json:"age_group"`
}

type GalleryResponse struct {
	Items  []GalleryItem `json:"items"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}
