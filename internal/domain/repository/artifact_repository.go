package repository

import "context"

// ArtifactRepository grava artefatos de relatório. Put sobrescreve qualquer
// conteúdo anterior na mesma chave.
type ArtifactRepository interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// Location descreve onde a chave fica gravada (s3:// ou caminho local).
	Location(key string) string
}
