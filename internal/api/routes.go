package api

import "github.com/gofiber/fiber/v2"

type route struct {
	method    string
	path      string
	protected bool
	handle    func(*Handler, *fiber.Ctx) error
}

var routeTable = []route{
	{method: fiber.MethodGet, path: "/health", handle: (*Handler).Health},

	{method: fiber.MethodPost, path: "/auth/login", handle: (*Handler).Login},
	{method: fiber.MethodPost, path: "/auth/logout", handle: (*Handler).Logout},
	{method: fiber.MethodGet, path: "/auth/verify", protected: true, handle: (*Handler).Verify},

	{method: fiber.MethodGet, path: "/file/list_folder_items", protected: true, handle: (*Handler).ListFolderItems},
	{method: fiber.MethodGet, path: "/file/list_mounted_drives", protected: true, handle: (*Handler).ListMountedDrives},
	{method: fiber.MethodGet, path: "/file/stream", protected: true, handle: (*Handler).Stream},
	{method: fiber.MethodPost, path: "/file/upload", protected: true, handle: (*Handler).Upload},
	{method: fiber.MethodPut, path: "/file/user_settings", protected: true, handle: (*Handler).PutUserSettings},
	{method: fiber.MethodGet, path: "/file/user_settings", protected: true, handle: (*Handler).GetUserSettings},
	{method: fiber.MethodGet, path: "/file/browse", protected: true, handle: (*Handler).Browse},
	{method: fiber.MethodGet, path: "/file/external_drive", protected: true, handle: (*Handler).ExternalDrive},

	{method: fiber.MethodPut, path: "/permissions/share", protected: true, handle: (*Handler).Share},
	{method: fiber.MethodGet, path: "/permissions/admin_check", protected: true, handle: (*Handler).AdminCheck},
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	for _, entry := range routeTable {
		handle := entry.handle
		endpoint := func(c *fiber.Ctx) error {
			return handle(handler, c)
		}
		if entry.protected {
			app.Add(entry.method, entry.path, handler.AuthRequired, endpoint)
			continue
		}
		app.Add(entry.method, entry.path, endpoint)
	}
}
