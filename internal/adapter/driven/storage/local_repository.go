package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-cost-watch/internal/domain/repository"
)

// LocalRepositoryImpl grava artefatos em um diretório local, usando a chave
// como caminho relativo. Serve para execuções da CLI sem bucket S3.
type LocalRepositoryImpl struct {
	baseDir string
}

// NewLocalRepository cria o repositório no diretório informado. Diretório
// vazio usa o diretório de trabalho atual.
func NewLocalRepository(baseDir string) (repository.ArtifactRepository, error) {
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
		baseDir = cwd
	}
	return &LocalRepositoryImpl{baseDir: baseDir}, nil
}

// Put escreve o artefato, sobrescrevendo qualquer arquivo existente na chave.
func (r *LocalRepositoryImpl) Put(ctx context.Context, key string, body []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// Location retorna o caminho absoluto de uma chave.
func (r *LocalRepositoryImpl) Location(key string) string {
	path, err := r.resolve(key)
	if err != nil {
		return key
	}
	return path
}

// resolve impede chaves que saiam do diretório base.
func (r *LocalRepositoryImpl) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}
	return filepath.Join(r.baseDir, clean), nil
}
