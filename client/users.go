package client

import (
	"context"

	"teamup/apperrors"
	"teamup/dto"
	"teamup/validate"
	"teamup/viewmodel"
)

// Register validates the registration form, creates the account and
// persists the authenticated user. Validation failures never reach the
// network.
func (c *Client) Register(ctx context.Context, form validate.RegisterForm, contacts viewmodel.Contacts) (viewmodel.User, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return viewmodel.User{}, apperrors.NewValidation(errs)
	}

	user := viewmodel.User{
		Username: form.Username,
		Gender:   form.Gender,
		Bio:      form.Bio,
		Contacts: contacts,
	}
	if form.Avatar != "" {
		user.Avatar = &form.Avatar
	}

	var payload dto.UserPayload
	if err := c.post(ctx, "/api/users/signup", user.SignupPayload(form.Password), &payload); err != nil {
		if apperrors.IsKind(err, apperrors.Conflict) {
			return viewmodel.User{}, apperrors.New(apperrors.Conflict,
				"User with this username already exists")
		}
		return viewmodel.User{}, err
	}

	created := viewmodel.UserFromPayload(payload)
	if err := c.saveSession(created); err != nil {
		return viewmodel.User{}, apperrors.Wrap(apperrors.Unknown,
			"Could not persist the session", err)
	}
	return created, nil
}

// Login authenticates with username and password and persists the
// authenticated user.
func (c *Client) Login(ctx context.Context, username, password string) (viewmodel.User, error) {
	errs := make(map[string]string)
	if msg := validate.Required(username, "Username is required"); msg != "" {
		errs["username"] = msg
	}
	if msg := validate.Required(password, "Password is required"); msg != "" {
		errs["password"] = msg
	}
	if len(errs) > 0 {
		return viewmodel.User{}, apperrors.NewValidation(errs)
	}

	var payload dto.UserPayload
	err := c.post(ctx, "/api/users/login", dto.LoginPayload{Username: username, Password: password}, &payload)
	if err != nil {
		if apperrors.IsKind(err, apperrors.AuthRequired) || apperrors.IsKind(err, apperrors.Validation) {
			return viewmodel.User{}, apperrors.New(apperrors.AuthRequired,
				"Invalid username or password")
		}
		return viewmodel.User{}, err
	}

	user := viewmodel.UserFromPayload(payload)
	if err := c.saveSession(user); err != nil {
		return viewmodel.User{}, apperrors.Wrap(apperrors.Unknown,
			"Could not persist the session", err)
	}
	return user, nil
}

// Logout revokes the server session and clears the persisted user. The
// local session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.delete(ctx, "/auth/logout", nil)
	if clearErr := c.clearSession(); clearErr != nil && err == nil {
		err = apperrors.Wrap(apperrors.Unknown, "Could not clear the session", clearErr)
	}
	return err
}

// UserByID fetches a user's public record.
func (c *Client) UserByID(ctx context.Context, id string) (viewmodel.User, error) {
	var payload dto.UserPayload
	if err := c.get(ctx, fmtPath("/api/users/%s", id), nil, &payload); err != nil {
		if apperrors.IsKind(err, apperrors.NotFound) {
			return viewmodel.User{}, apperrors.New(apperrors.NotFound,
				"User with this id does not exist")
		}
		return viewmodel.User{}, err
	}
	return viewmodel.UserFromPayload(payload), nil
}

// UpdateProfile replaces the authenticated user's editable fields and
// refreshes the persisted session with the server's record.
func (c *Client) UpdateProfile(ctx context.Context, user viewmodel.User) (viewmodel.User, error) {
	if msg := validate.AvatarURL(derefString(user.Avatar)); msg != "" {
		return viewmodel.User{}, apperrors.NewValidation(map[string]string{"avatar": msg})
	}

	var payload dto.UserPayload
	err := c.patch(ctx, fmtPath("/api/users/%s", user.ID), user.UpdatePayload(), &payload)
	if err != nil {
		return viewmodel.User{}, err
	}

	updated := viewmodel.UserFromPayload(payload)
	updated.Token = c.token
	if err := c.saveSession(updated); err != nil {
		return viewmodel.User{}, apperrors.Wrap(apperrors.Unknown,
			"Could not persist the session", err)
	}
	return updated, nil
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
