package server

import (
	"Doodly/handler"
)

type Handlers struct {
	Auth    *handler.Auth
	Child   *handler.Child
	Prompt  *handler.Prompt
	Post    *handler.Post
	Gallery *handler.Gallery
	Stats   *handler.Stats
	Admin   *handler.Admin
}
