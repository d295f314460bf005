/*
Package blogsdk provides a client SDK for the blogger API.

# Overview

A Client wraps an *http.Client and exposes one method per API endpoint.
The Client itself is stateless: credentials are attached by an
AuthTransport installed as the HTTP client's transport, so the same Client
serves anonymous calls (login, register) and authenticated calls alike.

	client := blogsdk.NewClient("http://localhost:8080")
	client.HTTPClient.Transport = &blogsdk.AuthTransport{
		Credentials: sessions,  // anything with Token(ctx) and Clear(ctx)
		Navigator:   navigator, // told to go to /login after a ban
	}

	resp, err := client.Login(ctx, blogsdk.LoginRequest{Username: "alice", Password: "secret"})

# Request Hook

AuthTransport runs on every request:

 1. Requests whose path ends in /auth/login or /auth/register pass through
    unmodified.
 2. Otherwise, when Credentials yields a token, Authorization: Bearer <token>
    is set on a clone of the request.
 3. When the response is 403 and its JSON body carries "banned": true, the
    credentials are cleared and the Navigator is sent to LoginPath. The
    response is still returned, so the calling method fails with an
    *APIError whose Banned field is set.

An optional rate.Limiter throttles requests before they leave.

# Endpoint Organization

Methods are grouped by resource:

  - client_auth.go: Login, Register
  - client_posts.go: feed, posts, media upload, comments, likes
  - client_users.go: profiles, password, follow graph, profile picture
  - client_notifications.go: notifications and unread counts
  - client_reports.go: user reports and moderation
  - client_messages.go: direct messages
  - client_admin.go: admin statistics, users and posts

# Error Handling

Non-2xx responses become *APIError regardless of which of the API's error
body shapes was used:

	post, err := client.GetPost(ctx, 42)
	switch {
	case blogsdk.IsBanned(err):
		// session already cleared
	case blogsdk.IsStatus(err, http.StatusNotFound):
		// no such post
	case err != nil:
		return err
	}

Requests with validate tags (register, login, create post, report, change
password, role change, messages) are checked locally first. A failure
returns *ValidationError and nothing is sent:

	_, err := client.Register(ctx, blogsdk.RegisterRequest{
		Username:        "al",
		Email:           "al@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	var verr *blogsdk.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(verr.Fields["username"])        // must be at least 3 characters
		fmt.Println(verr.Fields["confirmPassword"]) // must match password
	}

# Thread Safety

Client and AuthTransport are safe for concurrent use provided the
Credentials implementation is.
*/
package blogsdk
