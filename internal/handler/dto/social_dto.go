package dto

// FriendRequestRequest представляет запрос дружбы
type FriendRequestRequest struct {
	AddresseeID uint `json:"addressee_id" binding:"required"`
}

// SendMessageRequest представляет отправку личного сообщения
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required,min=1,max=2000"`
}

// CreateAnnouncementRequest представляет публикацию объявления
type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Body  string `json:"body" binding:"required,min=1,max=2000"`
}
