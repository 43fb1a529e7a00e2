// ABOUTME: Entity records mirrored from the Atlas backend API
// ABOUTME: All identifiers are server-assigned; the client never fabricates one

package model

import "time"

// AppointmentStatus values as reported by the backend.
const (
	AppointmentScheduled = "scheduled"
	AppointmentApproved  = "approved"
	AppointmentCheckedIn = "checked_in"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// PaymentStatus values for appointments.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// LoanStatus values for book loans.
const (
	LoanBorrowed = "borrowed"
	LoanReturned = "returned"
	LoanOverdue  = "overdue"
)

// User is an authenticated account. Role and verification state are
// backend-owned; the client only displays them.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Appointment is a lab booking slot.
type Appointment struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	LabID         string     `json:"labId"`
	Date          string     `json:"date"` // YYYY-MM-DD, backend format
	Time          string     `json:"time"` // HH:MM
	Purpose       string     `json:"purpose"`
	Participants  int        `json:"participants"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	CheckInAt     *time.Time `json:"checkInAt,omitempty"`
	CheckOutAt    *time.Time `json:"checkOutAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// BreakInterval is one break within an attendance session. End is nil
// while the break is still open.
type BreakInterval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// AttendanceRecord is one work session. CheckOut is nil while the
// session is open; Breaks keep server order.
type AttendanceRecord struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	CheckIn  time.Time       `json:"checkIn"`
	CheckOut *time.Time      `json:"checkOut,omitempty"`
	Breaks   []BreakInterval `json:"breaks,omitempty"`
}

// Book is a library catalog entry. Available is maintained server-side
// from borrow/return activity.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Available int       `json:"available"`
	RegionID  string    `json:"regionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookLoan links a book to a borrower.
type BookLoan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"bookId"`
	UserID     string     `json:"userId"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	Status     string     `json:"status"`
}

// Company is a directory record.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RegionID  string    `json:"regionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Department belongs to a company.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Employee belongs to a department.
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Position     string    `json:"position"`
	DepartmentID string    `json:"departmentId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Faculty is a teaching staff directory record.
type Faculty struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	LabID     string    `json:"labId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Region is a geographic grouping referenced by companies, labs and books.
type Region struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoboticsLab is a bookable lab site.
type RoboticsLab struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RegionID  string    `json:"regionId"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is an admin broadcast message.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
