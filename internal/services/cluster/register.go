// Package cluster handles service discovery concerns: registering the
// game server with Consul and exposing the liveness endpoint the agent
// health-checks.
package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
)

// Register announces the service to the Consul agent at consulAddr. The
// agent resolves the health-check URL by container hostname, so the
// service id stays unique per instance.
func Register(serviceName string, servicePort, healthPort int, consulAddr string) error {
	config := consul.DefaultConfig()
	if consulAddr != "" {
		config.Address = consulAddr
	}

	client, err := consul.NewClient(config)
	if err != nil {
		return fmt.Errorf("create consul client: %w", err)
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: servicePort,
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, healthPort),
			Timeout:  "5s",
			Interval: "10s",
			// Drop instances that stay critical; they are gone, not slow.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("register service %q: %w", serviceID, err)
	}
	return nil
}
