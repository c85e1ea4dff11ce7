// Package mdns provides mDNS/Zeroconf advertisement for swatch server discovery.
package mdns

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/hashicorp/mdns"

	"github.com/listenupapp/swatch-server/internal/domain"
	"github.com/listenupapp/swatch-server/internal/version"
)

// ServiceType is the mDNS service type swatch servers advertise under.
const ServiceType = "_swatch._tcp"

// Service manages mDNS advertisement so clients on the local network
// can discover the server without manual configuration.
type Service struct {
	server *mdns.Server
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService creates a new mDNS service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// txtRecords builds the TXT metadata advertised for an instance. Clients
// read the algorithm and seed from here so they can derive colors locally
// and match what the server would serve.
func txtRecords(instance *domain.Instance) []string {
	records := []string{
		fmt.Sprintf("id=%s", instance.ID),
		fmt.Sprintf("name=%s", instance.Name),
		fmt.Sprintf("version=%s", version.Server),
		fmt.Sprintf("api=%s", version.API),
		fmt.Sprintf("algo=%s", instance.Algorithm),
		fmt.Sprintf("seed=%d", instance.DefaultSeed),
	}

	if instance.LocalURL != "" {
		records = append(records, fmt.Sprintf("url=%s", instance.LocalURL))
	}

	return records
}

// Start begins advertising the server via mDNS. Call it once the HTTP
// server is listening on the given port.
//
// A returned error is typically non-fatal: multicast is unavailable in
// many container setups, and the server works fine without discovery.
func (s *Service) Start(instance *domain.Instance, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop existing server if running (for restart scenarios)
	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
	}

	host, err := os.Hostname()
	if err != nil {
		host = "swatch-server"
	}

	service, err := mdns.NewMDNSService(
		host,                 // Instance name (hostname)
		ServiceType,          // Service type (_swatch._tcp)
		"",                   // Domain (empty = .local)
		"",                   // Host (empty = use system hostname)
		port,                 // Port
		nil,                  // IPs (nil = all interfaces)
		txtRecords(instance), // TXT records
	)
	if err != nil {
		return fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{
		Zone: service,
	})
	if err != nil {
		return fmt.Errorf("start mDNS server: %w", err)
	}

	s.server = server

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", instance.Name,
		"id", instance.ID,
	)

	return nil
}

// Stop stops mDNS advertising.
// Safe to call multiple times or if not started.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
		s.logger.Info("mDNS advertisement stopped")
	}
}
