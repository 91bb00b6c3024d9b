package model

// 관리자 역할
const (
	RoleAdmin  = "admin"  // 예약·설문 쓰기 가능
	RoleViewer = "viewer" // 대시보드 조회만
)

// AdminUser 콘솔 로그인 계정 (admin_users)
type AdminUser struct {
	UserID       string `gorm:"column:id;type:uuid;primaryKey"             json:"user_id"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"     json:"email"`
	Name         string `gorm:"type:varchar(100);not null"                 json:"name"`
	PasswordHash string `gorm:"type:varchar(200);not null"                 json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
	BaseModel
}

// TableName 테이블 이름
func (AdminUser) TableName() string { return "admin_users" }

// ValidRole 역할 값 검증
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleViewer
}
