package common

// Brand is a canonical directory entry, decoupled from any single creator.
// One brand may back many matches and many deals.
type Brand struct {
	Id   string `json:"id"`
	Name string `json:"name"`

	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	ContactEmail string `json:"contactEmail,omitempty"`
	Social       string `json:"social,omitempty"`

	CompanySize    string `json:"companySize,omitempty"`
	Location       string `json:"location,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`

	ContentTypes []string `json:"contentTypes,omitempty"`

	Active bool `json:"active"`

	Created int64 `json:"created,omitempty"`
}

func (b *Brand) Check() error {
	if b.Name == "" {
		return ErrValidation("brand name is required")
	}
	return nil
}
