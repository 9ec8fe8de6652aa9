package models

// Ordered portfolio collections. Each maps to one admin-editable list on the
// site; rows are returned sorted by SortOrder ascending.

type Project struct {
	BaseModel
	Title       string  `json:"title" gorm:"type:varchar(255);not null"`
	Description string  `json:"description" gorm:"type:text"`
	TechStack   string  `json:"techStack" gorm:"type:text"`
	RepoURL     *string `json:"repoURL,omitempty" gorm:"type:text"`
	LiveURL     *string `json:"liveURL,omitempty" gorm:"type:text"`
	SortOrder   int     `json:"sortOrder" gorm:"not null;default:0"`
}

type ExperienceEntry struct {
	BaseModel
	Company   string  `json:"company" gorm:"type:varchar(255);not null"`
	Role      string  `json:"role" gorm:"type:varchar(255);not null"`
	Period    string  `json:"period" gorm:"type:varchar(100)"`
	Summary   string  `json:"summary" gorm:"type:text"`
	Location  *string `json:"location,omitempty" gorm:"type:varchar(255)"`
	SortOrder int     `json:"sortOrder" gorm:"not null;default:0"`
}

type EducationEntry struct {
	BaseModel
	Institution string `json:"institution" gorm:"type:varchar(255);not null"`
	Degree      string `json:"degree" gorm:"type:varchar(255)"`
	Period      string `json:"period" gorm:"type:varchar(100)"`
	Details     string `json:"details" gorm:"type:text"`
	SortOrder   int    `json:"sortOrder" gorm:"not null;default:0"`
}

type SkillGroup struct {
	BaseModel
	Name      string `json:"name" gorm:"type:varchar(255);not null"`
	Skills    string `json:"skills" gorm:"type:text"`
	SortOrder int    `json:"sortOrder" gorm:"not null;default:0"`
}

type Achievement struct {
	BaseModel
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text"`
	Year        string `json:"year" gorm:"type:varchar(20)"`
	SortOrder   int    `json:"sortOrder" gorm:"not null;default:0"`
}

type ConsultingProject struct {
	BaseModel
	Client      string `json:"client" gorm:"type:varchar(255);not null"`
	Focus       string `json:"focus" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"type:varchar(50);not null;default:'IN_PROGRESS'"`
	SortOrder   int    `json:"sortOrder" gorm:"not null;default:0"`
}
