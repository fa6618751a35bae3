package transport

type CreateListItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Store    string  `json:"store"`
	Category string  `json:"category"`
	Location string  `json:"location"`
}

type CreateListRequest struct {
	Name   string           `json:"name"`
	Items  []CreateListItem `json:"items"`
	UserID uint             `json:"userId"`
}

type CreateListResponse struct {
	ListID           uint `json:"listId"`
	UserID           uint `json:"userId"`
	CreatedItemCount int  `json:"createdItemCount"`
}

type UpdateListRequest struct {
	Name   *string `json:"name"`
	UserID *uint   `json:"userId"`
}

// Price is a pointer so an omitted field is distinguishable from 0 and can
// be rejected before any write.
type AddProductRequest struct {
	ProductName   string   `json:"productName"`
	Price         *float64 `json:"price"`
	Category      string   `json:"category"`
	StoreName     string   `json:"storeName"`
	StoreLocation string   `json:"storeLocation"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID      uint   `json:"userId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AccessToken string `json:"accessToken"`
}
