package tls

import (
	"crypto/ecdsa"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SaveCertToFiles writes a generated certificate's PEM-encoded cert and key
// to certPath/keyPath, creating parent directories as needed.
func SaveCertToFiles(cert *GeneratedCertificate, certPath, keyPath string) error {
	if cert == nil {
		return errors.New("tls: certificate cannot be nil")
	}
	if err := os.MkdirAll(filepath.Dir(certPath), 0755); err != nil {
		return fmt.Errorf("tls: create certificate directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0755); err != nil {
		return fmt.Errorf("tls: create key directory: %w", err)
	}
	if err := os.WriteFile(certPath, cert.CertPEM, 0644); err != nil {
		return fmt.Errorf("tls: write certificate file: %w", err)
	}
	if err := os.WriteFile(keyPath, cert.KeyPEM, 0600); err != nil {
		_ = os.Remove(certPath)
		return fmt.Errorf("tls: write key file: %w", err)
	}
	return nil
}

// LoadCertFromFiles reads a previously saved certificate and key pair back
// from certPath/keyPath.
func LoadCertFromFiles(certPath, keyPath string) (*GeneratedCertificate, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("tls: read certificate file: %w", err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("tls: read key file: %w", err)
	}

	cert, err := DecodeCertFromPEM(certPEM)
	if err != nil {
		return nil, err
	}
	key, err := DecodeKeyFromPEM(keyPEM)
	if err != nil {
		return nil, err
	}

	return &GeneratedCertificate{
		Certificate: cert,
		PrivateKey:  key,
		CertPEM:     certPEM,
		KeyPEM:      keyPEM,
	}, nil
}

// CreateTLSCertificate builds a crypto/tls.Certificate from PEM bytes, the
// form internal/mockserver needs to populate an http.Server's TLSConfig.
func CreateTLSCertificate(certPEM, keyPEM []byte) (tls.Certificate, error) {
	return tls.X509KeyPair(certPEM, keyPEM)
}

// GenerateAndSave generates a new self-signed certificate and writes it to
// certPath/keyPath.
func GenerateAndSave(cfg *CertificateConfig, certPath, keyPath string) (*GeneratedCertificate, error) {
	cert, err := GenerateSelfSignedCert(cfg)
	if err != nil {
		return nil, err
	}
	if err := SaveCertToFiles(cert, certPath, keyPath); err != nil {
		return nil, err
	}
	return cert, nil
}

// EnsureCertificate loads the certificate at certPath/keyPath if both files
// exist, otherwise generates and persists a new one. This is what lets
// `pactcore serve --tls --tls-cert-dir=DIR` reuse the same self-signed
// certificate across invocations instead of minting a fresh, untrusted one
// every time.
func EnsureCertificate(cfg *CertificateConfig, certPath, keyPath string) (*GeneratedCertificate, error) {
	_, certErr := os.Stat(certPath)
	_, keyErr := os.Stat(keyPath)
	if certErr == nil && keyErr == nil {
		return LoadCertFromFiles(certPath, keyPath)
	}
	return GenerateAndSave(cfg, certPath, keyPath)
}

// CertificateInfo is a human-readable projection of an x509.Certificate,
// suitable for printing to a terminal.
type CertificateInfo struct {
	Subject      string
	Issuer       string
	SerialNumber string
	NotBefore    string
	NotAfter     string
	DNSNames     []string
	IPAddresses  []string
	IsCA         bool
}

// GetCertificateInfo extracts the fields of CertificateInfo from cert.
func GetCertificateInfo(cert *x509.Certificate) *CertificateInfo {
	ipAddresses := make([]string, len(cert.IPAddresses))
	for i, ip := range cert.IPAddresses {
		ipAddresses[i] = ip.String()
	}
	return &CertificateInfo{
		Subject:      cert.Subject.String(),
		Issuer:       cert.Issuer.String(),
		SerialNumber: cert.SerialNumber.String(),
		NotBefore:    cert.NotBefore.Format("2006-01-02 15:04:05"),
		NotAfter:     cert.NotAfter.Format("2006-01-02 15:04:05"),
		DNSNames:     cert.DNSNames,
		IPAddresses:  ipAddresses,
		IsCA:         cert.IsCA,
	}
}

// VerifyKeyPair confirms that key is the private counterpart of cert's
// public key, catching a mismatched cert/key file pair before it reaches
// crypto/tls and produces a less legible error.
func VerifyKeyPair(cert *x509.Certificate, key *ecdsa.PrivateKey) error {
	certPubKey, ok := cert.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return errors.New("tls: certificate public key is not ECDSA")
	}
	if certPubKey.X.Cmp(key.X) != 0 || certPubKey.Y.Cmp(key.Y) != 0 {
		return errors.New("tls: private key does not match certificate public key")
	}
	return nil
}
