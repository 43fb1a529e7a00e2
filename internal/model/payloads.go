// ABOUTME: Request payloads sent to the backend, with shape validation tags
// ABOUTME: Validation here covers request shape only; business rules stay server-side

package model

// LoginPayload authenticates an existing account.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterPayload creates a new account.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProfilePayload updates the authenticated user's profile.
type ProfilePayload struct {
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// OTPPayload carries a one-time code for account verification.
type OTPPayload struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}

// ResetPasswordPayload completes a password reset with the emailed code.
type ResetPasswordPayload struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// AppointmentPayload books a lab slot.
type AppointmentPayload struct {
	LabID        string `json:"labId" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,datetime=15:04"`
	Purpose      string `json:"purpose" validate:"required"`
	Participants int    `json:"participants" validate:"required,min=1"`
}

// CapturePaymentPayload settles an appointment through the external
// checkout flow; the gateway reference comes from that flow, not from us.
type CapturePaymentPayload struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
	Reference     string `json:"reference" validate:"required"`
}

// BookPayload creates or updates a catalog entry. Quantity arrives from
// the CLI as text and is coerced before this payload is built.
type BookPayload struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Category string `json:"category" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	RegionID string `json:"regionId" validate:"required"`
}

// BorrowPayload borrows a book for a user.
type BorrowPayload struct {
	UserID string `json:"userId" validate:"required"`
	DueAt  string `json:"dueAt" validate:"required,datetime=2006-01-02"`
}

// CompanyPayload creates or updates a company.
type CompanyPayload struct {
	Name     string `json:"name" validate:"required"`
	RegionID string `json:"regionId" validate:"required"`
}

// DepartmentPayload creates or updates a department.
type DepartmentPayload struct {
	Name      string `json:"name" validate:"required"`
	CompanyID string `json:"companyId" validate:"required"`
}

// EmployeePayload creates or updates an employee.
type EmployeePayload struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Position     string `json:"position" validate:"required"`
	DepartmentID string `json:"departmentId" validate:"required"`
}

// FacultyPayload creates or updates a faculty member.
type FacultyPayload struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	LabID   string `json:"labId" validate:"required"`
}

// RegionPayload creates or updates a region.
type RegionPayload struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required,uppercase"`
}

// LabPayload creates or updates a robotics lab.
type LabPayload struct {
	Name     string `json:"name" validate:"required"`
	RegionID string `json:"regionId" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

// NotificationPayload broadcasts an admin notification.
type NotificationPayload struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}
