package team

type renameRequest struct {
	Nickname string `json:"nickname"`
}
