// Package authproxy implements the GitHub OAuth token-exchange proxy the
// wiki's CMS admin UI authenticates through. The CMS runs as a static page
// and cannot hold the OAuth client secret, so this proxy performs the
// code-for-token exchange and hands the token back via postMessage.
package authproxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultAuthorizeURL = "https://github.com/login/oauth/authorize"
	defaultTokenURL     = "https://github.com/login/oauth/access_token"
)

// callbackHTML posts the token back to the window that opened the popup.
const callbackHTML = `<!doctype html>
<html><body><script>
(function() {
  const token = %q;
  window.opener.postMessage(
    "authorization:github:success:" + JSON.stringify({token: token, provider: "github"}),
    document.referrer
  );
  window.close();
})();
</script></body></html>
`

// Server holds the OAuth app credentials and endpoint configuration. The
// proxy is stateless; every request carries everything it needs.
type Server struct {
	clientID     string
	clientSecret string

	// AuthorizeURL and TokenURL default to GitHub's endpoints. Tests
	// point TokenURL at a local stub.
	AuthorizeURL string
	TokenURL     string

	HTTPClient *http.Client
}

// NewServer creates a proxy server for the given GitHub OAuth app.
func NewServer(clientID, clientSecret string) *Server {
	return &Server{
		clientID:     clientID,
		clientSecret: clientSecret,
		AuthorizeURL: defaultAuthorizeURL,
		TokenURL:     defaultTokenURL,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetupRouter builds the gin router with the proxy's three routes.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/_health/", s.Health)
	r.GET("/auth", s.Auth)
	r.GET("/callback", s.Callback)

	return r
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Auth redirects the browser to GitHub's authorization page.
func (s *Server) Auth(c *gin.Context) {
	q := url.Values{}
	q.Set("client_id", s.clientID)
	q.Set("scope", "repo,user")
	c.Redirect(http.StatusFound, s.AuthorizeURL+"?"+q.Encode())
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Callback exchanges the authorization code for an access token and renders
// the postMessage page that delivers it to the CMS.
func (s *Server) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code parameter"})
		return
	}

	token, err := s.exchangeCode(code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("token exchange failed: %v", err)})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, callbackHTML, token)
}

// exchangeCode posts the authorization code to the token endpoint and
// extracts the access token.
func (s *Server) exchangeCode(code string) (string, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Code:         code,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, data)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint response had no access_token")
	}
	return tok.AccessToken, nil
}
