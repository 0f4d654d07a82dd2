package components

// CreateInput carries the registration form fields plus the optional image
// payload read from the multipart request.
type CreateInput struct {
	Name        string `validate:"required"`
	Description string
	Quantity    int `validate:"gte=0"`
	CategoryID  *int
	LocationID  *int
	Status      string
	Image       []byte
	ImageName   string
}

// UpdateInput carries the edit form fields. Image is nil when the user did
// not pick a replacement file.
type UpdateInput struct {
	ID          int    `validate:"required,gt=0"`
	Name        string `validate:"required"`
	Description string
	Quantity    int `validate:"gte=0"`
	CategoryID  *int
	LocationID  *int
	Status      string
	Image       []byte
	ImageName   string
}
