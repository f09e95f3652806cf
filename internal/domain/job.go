package domain

// Company is the employer attached to a job posting.
type Company struct {
	Name         string `json:"name" bson:"name"`
	Description  string `json:"description" bson:"description"`
	ContactEmail string `json:"contactEmail" bson:"contactEmail"`
	ContactPhone string `json:"contactPhone" bson:"contactPhone"`
}

// Job is a job-board posting.
type Job struct {
	ID          string  `json:"id" bson:"_id"`
	Title       string  `json:"title" bson:"title"`
	Type        string  `json:"type" bson:"type"`
	Description string  `json:"description" bson:"description"`
	Location    string  `json:"location" bson:"location"`
	Salary      string  `json:"salary" bson:"salary"`
	Company     Company `json:"company" bson:"company"`
}

// CompanyPatch carries optional company updates.
type CompanyPatch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// JobPatch is a PATCH body: only non-nil fields are applied.
type JobPatch struct {
	Title       *string       `json:"title,omitempty"`
	Type        *string       `json:"type,omitempty"`
	Description *string       `json:"description,omitempty"`
	Location    *string       `json:"location,omitempty"`
	Salary      *string       `json:"salary,omitempty"`
	Company     *CompanyPatch `json:"company,omitempty"`
}

// Apply merges p into j.
func (p JobPatch) Apply(j Job) Job {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&j.Title, p.Title)
	set(&j.Type, p.Type)
	set(&j.Description, p.Description)
	set(&j.Location, p.Location)
	set(&j.Salary, p.Salary)
	if c := p.Company; c != nil {
		set(&j.Company.Name, c.Name)
		set(&j.Company.Description, c.Description)
		set(&j.Company.ContactEmail, c.ContactEmail)
		set(&j.Company.ContactPhone, c.ContactPhone)
	}
	return j
}
