package operator

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shotclock/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound       = errors.New("operator account not found")
	ErrInvalidToken   = errors.New("invalid token")
	ErrAddressRefused = errors.New("operator address not allowed")
	ErrUnavailable    = errors.New("operator accounts unavailable")
)

// Audit actions written by the desk.
const (
	ActionLogin        = "login"
	ActionLoginRefused = "login_ip_refused"
	ActionSensorStatus = "sensor_status"
)

// Desk holds the operator accounts and their audit trail. Every flow that
// changes who may drive the session, or what the session shows, leaves one
// audit row. A Desk without a database refuses logins and skips auditing.
type Desk struct {
	db *sqlx.DB
}

func NewDesk(db *sqlx.DB) *Desk {
	return &Desk{db: db}
}

// Available reports whether accounts are backed by a database.
func (d *Desk) Available() bool {
	return d != nil && d.db != nil
}

// LoginAttempt is one credential exchange at the login route.
type LoginAttempt struct {
	Username string
	Token    string
	IP       string
	Route    string
}

// Login checks an attempt against the stored account and audits the outcome.
// It returns ErrNotFound and ErrInvalidToken for bad credentials and
// ErrAddressRefused when the account is pinned to other addresses.
func (d *Desk) Login(ctx context.Context, at LoginAttempt) (*models.OperatorAccount, error) {
	if !d.Available() {
		return nil, ErrUnavailable
	}

	acct, err := d.account(ctx, at.Username)
	if errors.Is(err, ErrNotFound) {
		log.Printf("[OPERATOR] No operator account found for: %s", at.Username)
	}
	if err != nil {
		d.audit(ctx, at.Username, at.IP, at.Route, ActionLogin, nil, false)
		return nil, err
	}

	action, err := admit(acct, at.Token, at.IP)
	d.audit(ctx, at.Username, at.IP, at.Route, action, nil, err == nil)
	if err != nil {
		log.Printf("[OPERATOR] Login for %s refused from %s: %v", at.Username, at.IP, err)
		return nil, err
	}
	return acct, nil
}

// admit decides a login against a loaded account and names the audit action.
func admit(acct *models.OperatorAccount, token, ip string) (string, error) {
	if bcrypt.CompareHashAndPassword([]byte(acct.TokenHash), []byte(token)) != nil {
		return ActionLogin, ErrInvalidToken
	}
	if !IPAllowed(acct, ip) {
		return ActionLoginRefused, ErrAddressRefused
	}
	return ActionLogin, nil
}

// SensorStatusChanged audits an operator setting sensor availability.
func (d *Desk) SensorStatusChanged(ctx context.Context, username, ip, route string, available bool, status string) {
	d.audit(ctx, username, ip, route, ActionSensorStatus,
		map[string]interface{}{"available": available, "status": status}, true)
}

func (d *Desk) account(ctx context.Context, username string) (*models.OperatorAccount, error) {
	var acct models.OperatorAccount
	err := d.db.GetContext(ctx, &acct, `
		SELECT username, display_name, token_hash, roles, allowed_ips, created_at, updated_at
		FROM operator_accounts WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("[OPERATOR] Database error: %v", err)
		return nil, fmt.Errorf("load operator %s: %w", username, err)
	}
	return &acct, nil
}

func (d *Desk) audit(ctx context.Context, username, ip, route, action string, details map[string]interface{}, success bool) {
	if !d.Available() {
		return
	}
	if details == nil {
		details = map[string]interface{}{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO operator_audit (username, ip, route, action, details, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, username, ip, route, action, detailsJSON, success)
	if err != nil {
		log.Printf("[OPERATOR] Failed to audit %s for %s: %v", action, username, err)
	}
}

// Enrollment describes an operator account to create or replace.
type Enrollment struct {
	Username    string
	DisplayName string
	Token       string
	Roles       []string
	AllowedIPs  []string
}

// Enroll upserts an account, storing only the bcrypt hash of its token.
func (d *Desk) Enroll(ctx context.Context, e Enrollment) error {
	if !d.Available() {
		return ErrUnavailable
	}
	hashed, err := HashToken(e.Token)
	if err != nil {
		return err
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO operator_accounts (username, display_name, token_hash, roles, allowed_ips, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			token_hash = EXCLUDED.token_hash,
			roles = EXCLUDED.roles,
			allowed_ips = EXCLUDED.allowed_ips,
			updated_at = NOW()
	`, e.Username, e.DisplayName, hashed, pq.Array(e.Roles), pq.Array(e.AllowedIPs))
	if err != nil {
		return fmt.Errorf("enroll operator %s: %w", e.Username, err)
	}
	return nil
}

// AuditTrail returns audit rows, newest first.
func (d *Desk) AuditTrail(ctx context.Context, limit, offset int) ([]models.OperatorAudit, error) {
	if !d.Available() {
		return nil, ErrUnavailable
	}
	var rows []models.OperatorAudit
	err := d.db.SelectContext(ctx, &rows, `
		SELECT id, username, ip, route, action, details, success, created_at
		FROM operator_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("load audit trail: %w", err)
	}
	return rows, nil
}

// HashToken bcrypt-hashes an access token for storage.
func HashToken(plainToken string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

// IPAllowed reports whether ip may use the account. An empty list allows any IP.
func IPAllowed(acct *models.OperatorAccount, ip string) bool {
	if len(acct.AllowedIPs) == 0 {
		return true
	}
	for _, allowed := range acct.AllowedIPs {
		if allowed == ip {
			return true
		}
	}
	return false
}
