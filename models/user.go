package models

// UserRole separates the three audiences of the platform.
type UserRole string

const (
	RoleOwner      UserRole = "owner"
	RoleInfluencer UserRole = "influencer"
	RoleAdmin      UserRole = "admin"
)

// User is the account record behind every owner, influencer and admin.
// Authentication is deliberately thin: bcrypt hash plus a role claim; the
// richer identity surface lives outside this service.
type User struct {
	BaseModel
	Name         string   `gorm:"type:varchar(150);not null" json:"name"`
	Email        string   `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive     bool     `gorm:"default:true" json:"is_active"`
}
