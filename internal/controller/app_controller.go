package controller

import (
	"os"
	"path/filepath"

	"syncpad-be/pkg/useragent"

	"github.com/gofiber/fiber/v2"
)

type IAppController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
}

// appController owns the root route. Modern browsers get the compiled
// React bundle; legacy browsers and crawlers get a reduced static page
// that works without JavaScript.
type appController struct {
	bundleDir string
}

func NewAppController(bundleDir string) IAppController {
	return &appController{
		bundleDir: bundleDir,
	}
}

func (c *appController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Static("/assets", filepath.Join(c.bundleDir, "assets"))
}

func (c *appController) Index(ctx *fiber.Ctx) error {
	client := useragent.Sniff(ctx.Get("User-Agent"))
	if client.WantsFallback() {
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.SendString(fallbackPage)
	}

	indexPath := filepath.Join(c.bundleDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		// Bundle not deployed alongside the binary; degrade to the
		// static page rather than a 404 on the landing route.
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.SendString(fallbackPage)
	}
	return ctx.SendFile(indexPath)
}

const fallbackPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>SyncPad</title>
</head>
<body>
	<h1>SyncPad</h1>
	<p>SyncPad is a note-taking app with shareable, optionally passcode-protected notes.</p>
	<p>Your browser cannot run the full application. Please use a current browser to sign in.</p>
</body>
</html>
`
