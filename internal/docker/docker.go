// Package docker manages the local Neo4j container backing the apply
// history recorder.
package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"terraform-applyx/internal/config"
)

const (
	// ContainerName identifies the history database container.
	ContainerName = "applyx-history-db"

	// DataDir is the host directory mounted for database persistence.
	DataDir = "history-data"

	boltPort = "7687/tcp"
	httpPort = "7474/tcp"
)

// StartHistoryDB pulls the configured Neo4j image if needed and starts the
// history database container, mounting DataDir for persistence.
func StartHistoryDB(ctx context.Context, cfg *config.HistoryConfig) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	if id, _ := findContainer(ctx, cli); id != "" {
		return fmt.Errorf("container %s already exists; run 'terraform-applyx stop' first", ContainerName)
	}

	fmt.Printf("Pulling image %s...\n", cfg.DockerImage)
	reader, err := cli.ImagePull(ctx, cfg.DockerImage, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", cfg.DockerImage, err)
	}
	// Drain so the pull completes before the container is created
	io.Copy(io.Discard, reader)
	reader.Close()

	dataPath, err := filepath.Abs(DataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	containerCfg := &container.Config{
		Image: cfg.DockerImage,
		Env: []string{
			fmt.Sprintf("NEO4J_AUTH=%s/%s", cfg.User, cfg.Password),
		},
		ExposedPorts: nat.PortSet{
			nat.Port(boltPort): struct{}{},
			nat.Port(httpPort): struct{}{},
		},
	}

	hostCfg := &container.HostConfig{
		PortBindings: nat.PortMap{
			nat.Port(boltPort): []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "7687"}},
			nat.Port(httpPort): []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "7474"}},
		},
		Binds: []string{dataPath + ":/data"},
	}

	created, err := cli.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, ContainerName)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	if err := cli.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}

	fmt.Printf("✓ Started container %s\n", ContainerName)
	fmt.Printf("  Bolt endpoint: %s\n", cfg.URI)
	fmt.Printf("  Data directory: %s\n", dataPath)

	return nil
}

// StopHistoryDB stops and removes the history database container. The data
// directory is preserved.
func StopHistoryDB(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	containerID, err := findContainer(ctx, cli)
	if err != nil {
		return err
	}
	if containerID == "" {
		return fmt.Errorf("container %s not found", ContainerName)
	}

	fmt.Printf("Stopping container %s...\n", ContainerName)
	timeout := 10 // seconds
	if err := cli.ContainerStop(ctx, containerID, container.StopOptions{Timeout: &timeout}); err != nil {
		// Container might already be stopped, try to remove anyway
		fmt.Printf("Warning: failed to stop container: %v\n", err)
	}

	if err := cli.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); err != nil {
		return fmt.Errorf("failed to remove container: %w", err)
	}

	fmt.Printf("✓ Container %s removed; data preserved in %s/\n", ContainerName, DataDir)
	return nil
}

func findContainer(ctx context.Context, cli *client.Client) (string, error) {
	containers, err := cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return "", fmt.Errorf("failed to list containers: %w", err)
	}

	for _, c := range containers {
		for _, name := range c.Names {
			if strings.TrimPrefix(name, "/") == ContainerName {
				return c.ID, nil
			}
		}
	}
	return "", nil
}
