package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
)

type SignatureConfig struct {
	Platform string
	Header   string // X-Hub-Signature-256, X-Tiktok-Signature
	Prefix   string // "sha256=" na Meta, vazio no TikTok
	Secret   string
	MaxBody  int64
}

// VerifySignature confere HMAC-SHA256(secret, body) em hex. Sem segredo, só
// registra o header e deixa passar. O corpo é devolvido intacto ao handler.
func VerifySignature(cfg SignatureConfig) func(http.Handler) http.Handler {
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = 1 << 20
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(cfg.Header)

			if cfg.Secret == "" {
				logger.WithFields(map[string]interface{}{
					"platform":  cfg.Platform,
					"signature": header,
				}).Debug("assinatura não verificada (segredo ausente)")
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, cfg.MaxBody+1))
			r.Body.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, "could not read body")
				return
			}
			if int64(len(body)) > cfg.MaxBody {
				writeError(w, http.StatusRequestEntityTooLarge, "body too large")
				return
			}

			if !ValidSignature(body, header, cfg.Prefix, cfg.Secret) {
				metrics.RecordSignatureFailure(cfg.Platform)
				logger.WithFields(map[string]interface{}{
					"platform":  cfg.Platform,
					"remote_ip": r.RemoteAddr,
				}).Warn("🚫 assinatura de webhook inválida")
				writeError(w, http.StatusUnauthorized, "invalid_signature")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func ValidSignature(body []byte, header, prefix, secret string) bool {
	if header == "" {
		return false
	}
	got := strings.TrimSpace(header)
	if prefix != "" {
		if !strings.HasPrefix(got, prefix) {
			return false
		}
		got = strings.TrimPrefix(got, prefix)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(strings.ToLower(got)), []byte(expected))
}

// Sign é o inverso de ValidSignature, para testes e ferramentas.
func Sign(body []byte, prefix, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return prefix + hex.EncodeToString(mac.Sum(nil))
}
