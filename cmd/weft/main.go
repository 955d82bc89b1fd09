// Package main provides the weft CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/weft-ml/weft/backend"
	_ "github.com/weft-ml/weft/backend/all"
	"github.com/weft-ml/weft/backend/webgpu"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("weft %s\n", version)
	case "devices":
		listDevices()
	case "":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(1)
	}
}

func listDevices() {
	fmt.Println("Registered devices:")
	for _, name := range backend.List() {
		status := "unavailable"
		if backend.Available(name) {
			status = "available"
		}
		fmt.Printf("  %-8s %s\n", name, status)
	}

	if webgpu.IsAvailable() {
		gpu, err := webgpu.New()
		if err == nil {
			info := gpu.AdapterInfo()
			fmt.Printf("\nWebGPU adapter: %s (%s)\n", info.Device, info.Description)
			gpu.Release()
		}
	}

	if env := os.Getenv(backend.DeviceEnv); env != "" {
		fmt.Printf("\n%s=%s\n", backend.DeviceEnv, env)
	}
}

func usage() {
	fmt.Printf("weft - device-safe tensors for Go\n")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  devices    List registered compute devices and availability")
	fmt.Println("  version    Show version")
}
