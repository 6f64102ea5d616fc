package handler

// --- Request / Response types ---

// userDraftPayload is the wire shape of an import candidate (and of generated
// identities). birth_date uses ISO date format (2006-01-02).
type userDraftPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	BirthDate   string `json:"birth_date"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Avatar      string `json:"avatar"`
	Company     string `json:"company"`
	JobPosition string `json:"job_position"`
	Mobile      string `json:"mobile"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

type batchImportResponse struct {
	TotalRecords int `json:"total_records"`
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
}

type userResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	BirthDate   string `json:"birth_date"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Avatar      string `json:"avatar"`
	Company     string `json:"company"`
	JobPosition string `json:"job_position"`
	Mobile      string `json:"mobile"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
