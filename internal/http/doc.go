// Package httpapp provides the HTTP server for Thoughtwall.
//
//	@title						Thoughtwall API
//	@version					0.1.0
//	@description				A small JSON API for short text posts ("thoughts") with likes,
//	@description				categories, and token-based accounts.
//	@description
//	@description				## Authentication
//	@description
//	@description				Creating, editing, and deleting thoughts requires an access token.
//	@description				Register or log in to get one:
//	@description
//	@description				```bash
//	@description				curl -X POST /users -d '{"username":"ana","email":"a@x.com","password":"password123"}'
//	@description				# => {"success":true,"userId":"...","username":"ana","accessToken":"TOKEN"}
//	@description				```
//	@description
//	@description				Then send the token on every write:
//	@description				```bash
//	@description				curl -X POST /thoughts -H "Authorization: TOKEN" -d '{"message":"hi"}'
//	@description				```
//	@description
//	@description				Logging in again issues a new token and invalidates the old one;
//	@description				each account has at most one live token.
//	@description
//	@description				Liking a thought needs no token at all:
//	@description				```bash
//	@description				curl -X POST /thoughts/ID/like
//	@description				```
//
//	@contact.name				Thoughtwall
//	@license.name				MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque access token from /users or /sessions
//
//	@tag.name					Thoughts
//	@tag.description			Post, browse, edit, delete, and like short thoughts. Browsing supports category filter, hearts/date sort, and pagination.
//
//	@tag.name					Users
//	@tag.description			Account registration, login, and deletion. Passwords are stored only as bcrypt hashes.
//
//	@tag.name					Admin
//	@tag.description			Administrative endpoints. Require the X-Admin-Secret header.
package httpapp
