package handler

type ContextKey string

var (
	IdentityCtxKey ContextKey = "identity"
	MyInfoCtx      ContextKey = "myInfo"
	UserInfoCtx    ContextKey = "userInfo"
	IDCtx          ContextKey = "id"
)
