package models

// JSON keys for lists, stores and products keep the PascalCase column names
// the mobile client already reads (list.ListID, item.Price, item.Location).

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string `gorm:"not null"                 json:"firstName"`
	LastName     string `gorm:"not null"                 json:"lastName"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	Token     string `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
	Revoked   bool   `gorm:"default:false"        json:"revoked"`
}

type List struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;column:list_id" json:"ListID"`
	UserID uint   `gorm:"index"                                   json:"UserID"`
	Name   string `gorm:"column:list_name;not null"               json:"ListName"`
}

// Store rows are deduplicated by (name, location): adding the same store
// again reuses the existing row instead of growing the table per product.
type Store struct {
	ID       uint   `gorm:"primaryKey;autoIncrement;column:store_id"          json:"StoreID"`
	Name     string `gorm:"column:store_name;not null;index:idx_store,unique" json:"StoreName"`
	Location string `gorm:"index:idx_store,unique"                            json:"Location"`
}

type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement;column:product_id" json:"ProductID"`
	Name     string  `gorm:"column:product_name;not null"               json:"ProductName"`
	Price    float64 `gorm:"not null"                                   json:"Price"`
	Category string  `json:"Category"`
	StoreID  uint    `gorm:"index;not null" json:"StoreID"`
	ListID   uint    `gorm:"index;not null" json:"ListID"`
}

// CombinedRow is one product joined with its store, the projection the
// client uses for per-list totals and per-item distance.
type CombinedRow struct {
	ProductID uint     `json:"ProductID"`
	Name      string   `gorm:"column:product_name" json:"ProductName"`
	Price     float64  `json:"Price"`
	Category  string   `json:"Category"`
	ListID    uint     `json:"ListID"`
	StoreID   uint     `json:"StoreID"`
	StoreName string   `json:"StoreName"`
	Location  string   `json:"Location"`
	DistanceM *float64 `gorm:"-" json:"distance_m"`
}
