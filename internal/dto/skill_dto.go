package dto

type CreateSkillRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Category    string `json:"category" validate:"required"`
	IsTeaching  *bool  `json:"isTeaching" validate:"required"`
	Proficiency string `json:"proficiency" validate:"required"`
}

type SkillResponse struct {
	Id          uint   `json:"id"`
	UserId      uint   `json:"userId"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	IsTeaching  bool   `json:"isTeaching"`
	Proficiency string `json:"proficiency"`
}

type SearchUsersQuery struct {
	Skill      string `query:"skill" validate:"required,min=1"`
	Category   string `query:"category"`
	IsTeaching *bool  `query:"isTeaching"`
}
