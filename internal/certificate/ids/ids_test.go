package ids

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats(t *testing.T) {
	g := New(nil)

	for range 200 {
		id := g.CertificateID()
		require.True(t, ValidCertificateID(id), id)
		require.Len(t, id, 17)

		tx := g.TransactionHash()
		require.True(t, ValidTransactionHash(tx), tx)
		require.Len(t, tx, 66)

		content := g.ContentHash()
		require.True(t, ValidContentHash(content), content)
		require.Len(t, content, 46)
	}
}

func TestBlockNumberRange(t *testing.T) {
	g := NewSeeded(7)
	for range 500 {
		bn := g.BlockNumber()
		assert.GreaterOrEqual(t, bn, uint64(18_000_000))
		assert.Less(t, bn, uint64(19_000_000))
	}
}

func TestGasFee(t *testing.T) {
	g := NewSeeded(7)
	for range 500 {
		fee := g.GasFee()
		require.Regexp(t, `^0\.00[2-6]\d{3}$`, fee)
		v, err := strconv.ParseFloat(fee, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.002)
		assert.Less(t, v, 0.007)
	}
}

func TestSeededIsDeterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for range 10 {
		assert.Equal(t, a.CertificateID(), b.CertificateID())
		assert.Equal(t, a.TransactionHash(), b.TransactionHash())
	}
	assert.NotEqual(t, NewSeeded(1).CertificateID(), NewSeeded(2).CertificateID())
}

func TestConcurrentUse(t *testing.T) {
	g := New(nil)
	const workers, perWorker = 16, 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id := g.CertificateID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidCertificateID("CERT-ABC123XYZ456"))
	assert.False(t, ValidCertificateID("CERT-abc123xyz456"))
	assert.False(t, ValidCertificateID("CERT-ABC123"))
	assert.False(t, ValidTransactionHash("0xABCDEF"))
	assert.False(t, ValidContentHash("Qm123"))
}
