package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"classconnect/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnRating, th.CommandEqual("rating"))
	adminGroup.HandleMessage(h.OnCourse, th.CommandEqual("course"))
	adminGroup.HandleMessage(h.OnCatalog, th.CommandEqual("catalog"))
	adminGroup.HandleMessage(h.OnRefresh, th.CommandEqual("refresh"))
	adminGroup.HandleMessage(h.OnStartRefresh, th.CommandEqual("startrefresh"))
	adminGroup.HandleMessage(h.OnStopRefresh, th.CommandEqual("stoprefresh"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnCatalogCallback, th.CallbackDataPrefix(catalogPagePrefix))
	cbGroup.HandleCallbackQuery(h.OnNoopCallback, th.CallbackDataEqual(noopCallback))
}
