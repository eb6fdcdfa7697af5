//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	appName = "filevault-backend"
	distDir = "dist"
)

func Build() error {
	fmt.Println("Building...")

	if err := os.MkdirAll(distDir, 0755); err != nil {
		return err
	}

	cmd := exec.Command("go", "build", "-o", filepath.Join(distDir, appName), "./cmd/server")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func BuildCLI() error {
	fmt.Println("Building CLI...")

	if err := os.MkdirAll(distDir, 0755); err != nil {
		return err
	}

	cmd := exec.Command("go", "build", "-o", filepath.Join(distDir, appName+"-cli"), "./cmd/cli")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func Test() error {
	fmt.Println("Testing...")
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func Run() error {
	mg.Deps(Build)
	fmt.Println("Running...")
	cmd := exec.Command(filepath.Join(distDir, appName))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll(distDir)
}
