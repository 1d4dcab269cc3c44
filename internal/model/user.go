package model

// User is an authenticated admin operator.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ImageUpload describes a file offered for upload. Content is fully buffered;
// uploads are capped well below memory-relevant sizes by the precheck.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}
