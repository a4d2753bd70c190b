package tls

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadCertFromFiles(t *testing.T) {
	tmpDir := t.TempDir()
	certPath := filepath.Join(tmpDir, "cert.pem")
	keyPath := filepath.Join(tmpDir, "key.pem")

	original, err := GenerateSelfSignedCert(nil)
	require.NoError(t, err)
	require.NoError(t, SaveCertToFiles(original, certPath, keyPath))

	keyInfo, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), keyInfo.Mode().Perm())

	loaded, err := LoadCertFromFiles(certPath, keyPath)
	require.NoError(t, err)
	assert.Equal(t, original.Certificate.SerialNumber, loaded.Certificate.SerialNumber)
	assert.Equal(t, original.PrivateKey.D, loaded.PrivateKey.D)
}

func TestSaveCertToFiles_NilCert(t *testing.T) {
	tmpDir := t.TempDir()
	err := SaveCertToFiles(nil, filepath.Join(tmpDir, "cert.pem"), filepath.Join(tmpDir, "key.pem"))
	assert.Error(t, err)
}

func TestSaveCertToFiles_CreatesNestedDirs(t *testing.T) {
	tmpDir := t.TempDir()
	certPath := filepath.Join(tmpDir, "a", "b", "cert.pem")
	keyPath := filepath.Join(tmpDir, "x", "y", "key.pem")

	cert, err := GenerateSelfSignedCert(nil)
	require.NoError(t, err)
	require.NoError(t, SaveCertToFiles(cert, certPath, keyPath))

	_, err = os.Stat(certPath)
	assert.NoError(t, err)
	_, err = os.Stat(keyPath)
	assert.NoError(t, err)
}

func TestLoadCertFromFiles_NotFound(t *testing.T) {
	_, err := LoadCertFromFiles("/nonexistent/cert.pem", "/nonexistent/key.pem")
	assert.Error(t, err)
}

// TestEnsureCertificateReusesAcrossServeInvocations exercises the flow
// `pactcore serve --tls --tls-cert-dir` relies on: the first call with an
// empty directory generates and persists a certificate, the second call
// against the same directory loads the identical certificate instead of
// minting a new one.
func TestEnsureCertificateReusesAcrossServeInvocations(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	first, err := EnsureCertificate(DefaultCertificateConfig(), certPath, keyPath)
	require.NoError(t, err)

	second, err := EnsureCertificate(DefaultCertificateConfig(), certPath, keyPath)
	require.NoError(t, err)

	assert.Equal(t, first.Certificate.SerialNumber, second.Certificate.SerialNumber)
}

func TestEnsureCertificate_OnlyCertFilePresentRegenerates(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	cert, err := GenerateSelfSignedCert(nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(certPath, cert.CertPEM, 0644))

	loaded, err := EnsureCertificate(nil, certPath, keyPath)
	require.NoError(t, err)
	assert.NotEqual(t, cert.Certificate.SerialNumber, loaded.Certificate.SerialNumber)
}

func TestGenerateAndSave(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	cert, err := GenerateAndSave(nil, certPath, keyPath)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cert.Certificate.Subject.CommonName)

	_, err = os.Stat(certPath)
	assert.NoError(t, err)
}

func TestGetCertificateInfo(t *testing.T) {
	cert, err := GenerateSelfSignedCert(DefaultCertificateConfig())
	require.NoError(t, err)

	info := GetCertificateInfo(cert.Certificate)
	assert.Contains(t, info.Subject, "pact-core-go mock server")
	assert.Contains(t, info.DNSNames, "localhost")
	assert.True(t, info.IsCA)
	assert.NotEmpty(t, info.SerialNumber)
}

func TestVerifyKeyPairAfterLoad(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	original, err := GenerateAndSave(nil, certPath, keyPath)
	require.NoError(t, err)
	require.NoError(t, VerifyKeyPair(original.Certificate, original.PrivateKey))

	loaded, err := LoadCertFromFiles(certPath, keyPath)
	require.NoError(t, err)
	assert.NoError(t, VerifyKeyPair(loaded.Certificate, loaded.PrivateKey))
}
