package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/careerconnect/connect-client/internal/models"
)

// Login exchanges credentials for a backend token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.sendJSON(ctx, "login", http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. profilePic is optional.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest, profilePic *Attachment) (string, error) {
	form := &multipartForm{}
	form.add("name", req.Name)
	form.add("email", req.Email)
	form.add("password", req.Password)
	form.add("role", req.Role)
	form.add("college", req.College)
	form.add("bio", req.Bio)
	form.add("is_past_student", strconv.FormatBool(req.IsPastStudent))
	form.add("current_year", req.CurrentYear)
	form.add("current_sem", req.CurrentSem)
	if profilePic != nil {
		form.attach("profile_pic", profilePic)
	}

	var resp models.MessageResponse
	if err := c.sendMultipart(ctx, "register", http.MethodPost, "/api/auth/register", form, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
