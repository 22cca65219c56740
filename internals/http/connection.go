package http

type Header struct {
	Key   string
	Value string
}

type Connection interface {
	headers() []Header
	getUrl() string
	verifyCertificate() bool
}

// AnonConnection authenticates with the project's anonymous API key only.
// It is the connection used before a clinician has signed in.
type AnonConnection struct {
	url        string
	verifyCert bool
	anonKey    string
}

func (c *AnonConnection) headers() []Header {
	if len(c.anonKey) > 0 {
		return []Header{{Key: "apikey", Value: c.anonKey}}
	}
	return nil
}

func (c *AnonConnection) getUrl() string {
	return c.url
}

func (c *AnonConnection) verifyCertificate() bool {
	return c.verifyCert
}

// SessionConnection carries the anonymous API key plus the access token of a
// signed-in clinician. Row-level permissions are enforced by the backend from
// the bearer token.
type SessionConnection struct {
	url         string
	verifyCert  bool
	anonKey     string
	accessToken string
}

func (c *SessionConnection) headers() []Header {
	var hdrs []Header
	if len(c.anonKey) > 0 {
		hdrs = append(hdrs, Header{Key: "apikey", Value: c.anonKey})
	}
	if len(c.accessToken) > 0 {
		hdrs = append(hdrs, Header{Key: "Authorization", Value: "Bearer " + c.accessToken})
	}
	return hdrs
}

func (c *SessionConnection) getUrl() string {
	return c.url
}

func (c *SessionConnection) verifyCertificate() bool {
	return c.verifyCert
}
