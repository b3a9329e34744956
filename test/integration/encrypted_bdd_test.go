//go:build integration

package integration

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/infra"
	"github.com/eliteGoblin/focusd/netmon/internal/usecase"
)

var _ = Describe("Encrypted backend", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "netmon-encrypted-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	open := func() *infra.EncryptedKVStore {
		key, err := infra.EnsureKey(infra.NewFileKeyProvider(tmpDir))
		Expect(err).NotTo(HaveOccurred())
		store, err := infra.NewEncryptedKVStore(tmpDir, key)
		Expect(err).NotTo(HaveOccurred())
		return store
	}

	It("should survive a restart with the same key", func() {
		store := open()
		logs := usecase.NewLogStore(store)
		tracker, err := usecase.NewTracker(logs, usecase.NewTotalStore(store), zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		t0 := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.Local)
		_, err = tracker.Observe(domain.ConnectivitySample{
			Caps: &domain.Capabilities{Internet: true, Transports: []domain.Transport{domain.TransportCellular}},
			At:   t0,
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = tracker.Observe(domain.ConnectivitySample{At: t0.Add(5 * time.Second)})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Close()).To(Succeed())

		reopened := open()
		defer reopened.Close()

		entries, err := usecase.NewLogStore(reopened).LoadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))

		total, err := usecase.NewTotalStore(reopened).Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(5 * time.Second))

		report := usecase.BuildReport(t0, entries, total)
		Expect(usecase.LogText(report)).To(Equal(
			"Connected: 2024-01-02 10:00:00 (00:00:05)\n" +
				"Disconnected: 2024-01-02 10:00:05"))
	})
})
