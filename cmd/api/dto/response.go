package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"post not found"`
}

// SuccessResponseDTO is returned by endpoints without a payload.
type SuccessResponseDTO struct {
	Success bool `json:"success" example:"true"`
}

func Fail(msg string) ErrorResponseDTO {
	return ErrorResponseDTO{Success: false, Error: msg}
}
