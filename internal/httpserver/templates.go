package httpserver

import (
	"html/template"

	"github.com/labstack/echo/v4"

	"github.com/leopar/marketplace/internal/models"
)

// All pages go through html/template so every stored or user-supplied
// value is escaped for its output context. Never build page markup by
// string concatenation.
var pages = template.Must(template.New("pages").Parse(`
{{define "home"}}<!DOCTYPE html>
<html><body>
<h1>Welcome to LeoPar Marketplace!</h1>
{{if .LoggedIn}}<a href="/logout">Logout</a>{{else}}<a href="/login">Login</a> | <a href="/register">Register</a>{{end}}
</body></html>{{end}}

{{define "register"}}<!DOCTYPE html>
<html><body>
<h1>Register</h1>
{{with .Error}}<p>{{.}}</p>{{end}}
<form method="POST" action="/register">
  <input name="email" type="email" placeholder="Email" required><br>
  <input name="username" placeholder="Username" required><br>
  <input name="password" type="password" placeholder="Password" required><br>
  <button type="submit">Register</button>
</form>
<a href="/login">Login</a>
</body></html>{{end}}

{{define "login"}}<!DOCTYPE html>
<html><body>
<h1>Login</h1>
{{with .Error}}<p>{{.}}</p>{{end}}
<form method="POST" action="/login">
  <input name="email" type="email" placeholder="Email" required><br>
  <input name="password" type="password" placeholder="Password" required><br>
  <button type="submit">Login</button>
</form>
<a href="/register">Register</a>
</body></html>{{end}}

{{define "dashboard"}}<!DOCTYPE html>
<html><body>
<h1>Admin Dashboard</h1>
<h2>Products</h2>
<ul>
{{range .Products}}
  <li><b>{{.Name}}</b> - {{.Price}} - Seller: {{.Seller}} <a href="/admin/products/edit/{{.ID}}">Edit</a></li>
{{end}}
</ul>
<h2>Add New Product</h2>
<form method="POST" action="/admin/products/new">
  <input name="name" placeholder="Name" required><br>
  <textarea name="description" placeholder="Description"></textarea><br>
  <input name="price" type="number" step="0.01" min="0" placeholder="Price" required><br>
  <input name="image" placeholder="Image URL"><br>
  <input name="seller" placeholder="Seller"><br>
  <button type="submit">Create</button>
</form>
<a href="/logout">Logout</a>
</body></html>{{end}}

{{define "edit"}}<!DOCTYPE html>
<html><body>
<h1>Edit Product</h1>
<form method="POST" action="/admin/products/edit/{{.Product.ID}}">
  <input name="name" value="{{.Product.Name}}" required><br>
  <textarea name="description">{{.Product.Description}}</textarea><br>
  <input name="price" type="number" step="0.01" min="0" value="{{.Product.Price}}" required><br>
  <input name="image" value="{{.Product.Image}}"><br>
  <input name="seller" value="{{.Product.Seller}}"><br>
  <button type="submit">Save</button>
</form>
<a href="/admin/dashboard">Back</a>
</body></html>{{end}}
`))

type homeData struct {
	LoggedIn bool
}

type formData struct {
	Error string
}

type dashboardData struct {
	Products []models.Product
}

type editData struct {
	Product *models.Product
}

func renderPage(c echo.Context, code int, name string, data any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return pages.ExecuteTemplate(c.Response(), name, data)
}
