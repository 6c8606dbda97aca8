package dto

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

type UpdateOrganizationRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type CheckUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}
