package inviteservice

// Invite результат проверки токена приглашения
type Invite struct {
	Valid   bool  `json:"valid"`
	OwnerID int64 `json:"owner_id"` // пользователь, которому выдано приглашение
}
