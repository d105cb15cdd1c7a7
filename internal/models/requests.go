package models

// RegisterEmailRequest is the body of POST /auth/register/email.
type RegisterEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// VerifyEmailRequest is the body of POST /auth/verify/email.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// RegisterPhoneRequest is the body of POST /auth/register/phone.
// Phone format is enforced separately against the E.164-ish pattern.
type RegisterPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
	Name  string `json:"name" validate:"required"`
}

// VerifyPhoneRequest covers /auth/verify/phone and /auth/login/verify.
type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// LoginEmailRequest is the body of POST /auth/login/email.
type LoginEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginPhoneRequest is the body of POST /auth/login/phone.
type LoginPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// ResendOTPRequest carries either email or phone; email wins when both
// are present.
type ResendOTPRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateProfileRequest is the body of PUT /profile. Nil means "leave as is".
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Location *string `json:"location"`
}
