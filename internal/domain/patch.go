package domain

// Patches describe partial updates. A nil field is absent and leaves the
// target field unchanged; a non-nil field overwrites it. Identifiers and
// creation timestamps have no patch field and cannot change.

// DestinationPatch is a partial Destination.
type DestinationPatch struct {
	Name             *string   `json:"name,omitempty"`
	Slug             *string   `json:"slug,omitempty"`
	Location         *string   `json:"location,omitempty"`
	Description      *string   `json:"description,omitempty"`
	ShortDescription *string   `json:"shortDescription,omitempty"`
	Image            *string   `json:"image,omitempty"`
	Gallery          *[]string `json:"gallery,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	Reviews          *int      `json:"reviews,omitempty"`
	Price            *int      `json:"price,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Featured         *bool     `json:"featured,omitempty"`
	Highlights       *[]string `json:"highlights,omitempty"`
}

// Apply returns d with the present fields of p merged in. When the name
// changes and no slug is given, the slug is re-derived from the new name.
func (p DestinationPatch) Apply(d Destination) Destination {
	out := d.Clone()
	setString(&out.Name, p.Name)
	setString(&out.Location, p.Location)
	setString(&out.Description, p.Description)
	setString(&out.ShortDescription, p.ShortDescription)
	setString(&out.Image, p.Image)
	setStrings(&out.Gallery, p.Gallery)
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	setInt(&out.Reviews, p.Reviews)
	setInt(&out.Price, p.Price)
	setString(&out.Category, p.Category)
	setBool(&out.Featured, p.Featured)
	setStrings(&out.Highlights, p.Highlights)
	switch {
	case p.Slug != nil:
		out.Slug = *p.Slug
	case p.Name != nil && *p.Name != d.Name:
		out.Slug = Slugify(*p.Name)
	}
	return out
}

// ExperiencePatch is a partial Experience.
type ExperiencePatch struct {
	Name             *string     `json:"name,omitempty"`
	Slug             *string     `json:"slug,omitempty"`
	Description      *string     `json:"description,omitempty"`
	ShortDescription *string     `json:"shortDescription,omitempty"`
	Image            *string     `json:"image,omitempty"`
	Icon             *string     `json:"icon,omitempty"`
	Price            *int        `json:"price,omitempty"`
	Duration         *string     `json:"duration,omitempty"`
	Difficulty       *Difficulty `json:"difficulty,omitempty"`
	MaxParticipants  *int        `json:"maxParticipants,omitempty"`
	Included         *[]string   `json:"included,omitempty"`
	Category         *string     `json:"category,omitempty"`
	Featured         *bool       `json:"featured,omitempty"`
}

// Apply returns e with the present fields of p merged in. The slug follows
// the same rule as DestinationPatch.Apply.
func (p ExperiencePatch) Apply(e Experience) Experience {
	out := e.Clone()
	setString(&out.Name, p.Name)
	setString(&out.Description, p.Description)
	setString(&out.ShortDescription, p.ShortDescription)
	setString(&out.Image, p.Image)
	setString(&out.Icon, p.Icon)
	setInt(&out.Price, p.Price)
	setString(&out.Duration, p.Duration)
	if p.Difficulty != nil {
		out.Difficulty = *p.Difficulty
	}
	setInt(&out.MaxParticipants, p.MaxParticipants)
	setStrings(&out.Included, p.Included)
	setString(&out.Category, p.Category)
	setBool(&out.Featured, p.Featured)
	switch {
	case p.Slug != nil:
		out.Slug = *p.Slug
	case p.Name != nil && *p.Name != e.Name:
		out.Slug = Slugify(*p.Name)
	}
	return out
}

// TestimonialPatch is a partial Testimonial.
type TestimonialPatch struct {
	Name        *string `json:"name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Location    *string `json:"location,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Text        *string `json:"text,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Date        *string `json:"date,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

// Apply returns t with the present fields of p merged in.
func (p TestimonialPatch) Apply(t Testimonial) Testimonial {
	setString(&t.Name, p.Name)
	setString(&t.Avatar, p.Avatar)
	setString(&t.Location, p.Location)
	setInt(&t.Rating, p.Rating)
	setString(&t.Text, p.Text)
	setString(&t.Destination, p.Destination)
	setString(&t.Date, p.Date)
	setBool(&t.Featured, p.Featured)
	return t
}

// GalleryItemPatch is a partial GalleryItem.
type GalleryItemPatch struct {
	Title    *string `json:"title,omitempty"`
	Image    *string `json:"image,omitempty"`
	Category *string `json:"category,omitempty"`
	Location *string `json:"location,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
}

// Apply returns g with the present fields of p merged in.
func (p GalleryItemPatch) Apply(g GalleryItem) GalleryItem {
	setString(&g.Title, p.Title)
	setString(&g.Image, p.Image)
	setString(&g.Category, p.Category)
	setString(&g.Location, p.Location)
	setBool(&g.Featured, p.Featured)
	return g
}

// ContactPatch is a partial Contact.
type ContactPatch struct {
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// SocialPatch is a partial Social.
type SocialPatch struct {
	Instagram *string `json:"instagram,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Youtube   *string `json:"youtube,omitempty"`
}

// HeroPatch is a partial Hero.
type HeroPatch struct {
	Title           *string `json:"title,omitempty"`
	Subtitle        *string `json:"subtitle,omitempty"`
	CtaText         *string `json:"ctaText,omitempty"`
	BackgroundImage *string `json:"backgroundImage,omitempty"`
}

// StatsPatch is a partial Stats.
type StatsPatch struct {
	Destinations   *int `json:"destinations,omitempty"`
	HappyTravelers *int `json:"happyTravelers,omitempty"`
	Tours          *int `json:"tours,omitempty"`
	Awards         *int `json:"awards,omitempty"`
}

// CredentialsPatch is a partial Credentials.
type CredentialsPatch struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// SettingsPatch is a partial SiteSettings. Nested blocks are merged key by
// key, never replaced wholesale.
type SettingsPatch struct {
	SiteName         *string           `json:"siteName,omitempty"`
	Tagline          *string           `json:"tagline,omitempty"`
	Description      *string           `json:"description,omitempty"`
	Contact          *ContactPatch     `json:"contact,omitempty"`
	Social           *SocialPatch      `json:"social,omitempty"`
	Hero             *HeroPatch        `json:"hero,omitempty"`
	Stats            *StatsPatch       `json:"stats,omitempty"`
	AdminCredentials *CredentialsPatch `json:"adminCredentials,omitempty"`
}

// Apply returns s with the present fields of p merged in.
func (p SettingsPatch) Apply(s SiteSettings) SiteSettings {
	setString(&s.SiteName, p.SiteName)
	setString(&s.Tagline, p.Tagline)
	setString(&s.Description, p.Description)
	if c := p.Contact; c != nil {
		setString(&s.Contact.Phone, c.Phone)
		setString(&s.Contact.Email, c.Email)
		setString(&s.Contact.Address, c.Address)
	}
	if so := p.Social; so != nil {
		setString(&s.Social.Instagram, so.Instagram)
		setString(&s.Social.Facebook, so.Facebook)
		setString(&s.Social.Twitter, so.Twitter)
		setString(&s.Social.Youtube, so.Youtube)
	}
	if h := p.Hero; h != nil {
		setString(&s.Hero.Title, h.Title)
		setString(&s.Hero.Subtitle, h.Subtitle)
		setString(&s.Hero.CtaText, h.CtaText)
		setString(&s.Hero.BackgroundImage, h.BackgroundImage)
	}
	if st := p.Stats; st != nil {
		setInt(&s.Stats.Destinations, st.Destinations)
		setInt(&s.Stats.HappyTravelers, st.HappyTravelers)
		setInt(&s.Stats.Tours, st.Tours)
		setInt(&s.Stats.Awards, st.Awards)
	}
	if ac := p.AdminCredentials; ac != nil {
		setString(&s.AdminCredentials.Email, ac.Email)
		setString(&s.AdminCredentials.Password, ac.Password)
	}
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setStrings(dst *[]string, v *[]string) {
	if v != nil {
		*dst = cloneStrings(*v)
	}
}
