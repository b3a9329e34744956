//go:build integration

package integration

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/netmon/internal/daemon"
	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/infra"
	"github.com/eliteGoblin/focusd/netmon/internal/usecase"
	"github.com/eliteGoblin/focusd/netmon/test/fixtures"
)

var _ = Describe("Connectivity monitor", func() {
	var (
		tmpDir   string
		kv       *infra.FileKVStore
		logs     *usecase.KVLogStore
		totals   *usecase.KVTotalStore
		probe    *fixtures.ScriptedProbe
		tracker  *usecase.Tracker
		registry *usecase.MonitorRegistry
		cancel   context.CancelFunc
		done     chan error
	)

	start := func(clearOnStart bool) {
		var err error
		tracker, err = usecase.NewTracker(logs, totals, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		monitor := daemon.NewMonitor(
			daemon.MonitorConfig{PollInterval: 20 * time.Millisecond, ClearLogsOnStart: clearOnStart},
			probe, tracker, logs, registry, zap.NewNop(),
		)
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() { done <- monitor.Run(ctx) }()
	}

	stop := func() {
		cancel()
		Eventually(done, 2*time.Second).Should(Receive(MatchError(context.Canceled)))
	}

	loadKinds := func() []domain.EntryKind {
		entries, err := logs.LoadAll()
		Expect(err).NotTo(HaveOccurred())
		kinds := make([]domain.EntryKind, len(entries))
		for i, e := range entries {
			kinds[i] = e.Kind
		}
		return kinds
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "netmon-integration-*")
		Expect(err).NotTo(HaveOccurred())

		kv, err = infra.NewFileKVStore(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		logs = usecase.NewLogStore(kv)
		totals = usecase.NewTotalStore(kv)
		registry = usecase.NewMonitorRegistry(kv, infra.NewProcessChecker())
		probe = fixtures.NewScriptedProbe()
	})

	AfterEach(func() {
		kv.Close()
		os.RemoveAll(tmpDir)
	})

	Describe("recording transitions", func() {
		It("should log one entry per edge and persist the total", func() {
			probe.Online(domain.TransportWiFi)
			start(false)

			Eventually(loadKinds, 2*time.Second).Should(Equal([]domain.EntryKind{domain.KindConnected}))
			Eventually(tracker.NetworkTypeLine, time.Second).Should(Equal("Network Type: WiFi"))

			// Repeated connected samples add nothing
			calls := probe.Calls()
			Eventually(probe.Calls, time.Second).Should(BeNumerically(">", calls+2))
			Expect(loadKinds()).To(HaveLen(1))

			time.Sleep(1100 * time.Millisecond)
			probe.Offline()
			Eventually(loadKinds, 2*time.Second).Should(Equal([]domain.EntryKind{
				domain.KindConnected, domain.KindDisconnected,
			}))
			stop()

			total, err := totals.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeNumerically(">=", time.Second))
			Expect(tracker.StatusLine()).To(Equal(usecase.StatusDisconnectedLine))
		})

		It("should register and unregister the monitor pid", func() {
			start(false)
			Eventually(func() bool {
				_, alive := registry.RunningPID()
				return alive
			}, time.Second).Should(BeTrue())

			stop()
			_, alive := registry.RunningPID()
			Expect(alive).To(BeFalse())
		})
	})

	Describe("restarting", func() {
		It("should keep the total and optionally clear the log", func() {
			Expect(totals.Save(42 * time.Second)).To(Succeed())
			Expect(logs.Append(domain.LogEntry{Kind: domain.KindConnected, Timestamp: "2024-01-02 10:00:00"})).To(Succeed())

			start(true)
			Eventually(loadKinds, time.Second).Should(BeEmpty())
			Expect(tracker.Total()).To(Equal(42 * time.Second))
			stop()
		})
	})

	Describe("day report over stored data", func() {
		It("should pair entries across midnight", func() {
			for _, line := range []domain.LogEntry{
				{Kind: domain.KindConnected, Timestamp: "2024-01-01 23:59:00"},
				{Kind: domain.KindDisconnected, Timestamp: "2024-01-02 00:01:00"},
			} {
				Expect(logs.Append(line)).To(Succeed())
			}
			entries, err := logs.LoadAll()
			Expect(err).NotTo(HaveOccurred())

			day, err := usecase.ParseDay("2024-01-01")
			Expect(err).NotTo(HaveOccurred())
			report := usecase.BuildReport(day, entries, 2*time.Minute)

			Expect(usecase.ReportText(report)).To(Equal(
				"Connected: 2024-01-01 23:59:00 (00:02:00)\n" +
					"Total Connected Time: 00:02:00"))
		})
	})
})
