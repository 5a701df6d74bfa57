package models

// CategoryRecord is a row of the categories relation.
type CategoryRecord struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Category is a category with the number of published posts filed under it.
type Category struct {
	Name  string
	Count int
	Color string
}

// ImageUpload is a presigned upload slot for a post cover image.
type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
