package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic grava em um arquivo temporário no mesmo diretório e renomeia no destino
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário em %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("erro ao sincronizar %s: %w", tmpName, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("erro ao fechar %s: %w", tmpName, err)
	}

	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("erro ao ajustar permissões de %s: %w", tmpName, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("erro ao mover %s para %s: %w", tmpName, path, err)
	}

	return nil
}
