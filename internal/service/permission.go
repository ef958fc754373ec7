package service

import "foodgram/internal/models"

// Actor 发起请求的用户，nil 表示匿名
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// ActorFromUser 由用户模型构造Actor
func ActorFromUser(u *models.User) *Actor {
	return &Actor{UserID: u.ID, IsAdmin: u.IsAdmin()}
}

// ViewerID 匿名时为0
func (a *Actor) ViewerID() uint {
	if a == nil {
		return 0
	}
	return a.UserID
}

// Owned 有所有者的资源
type Owned interface {
	OwnerID() uint
}

// CanModify 管理员或资源所有者可以修改
func CanModify(actor *Actor, resource Owned) bool {
	if actor == nil || resource == nil {
		return false
	}
	return actor.IsAdmin || actor.UserID == resource.OwnerID()
}
