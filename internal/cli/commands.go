package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/fsman/internal/filesystem"
)

func (c *CLI) cmdList(ctx context.Context) error {
	path, err := c.readDefault("Directory path (leave blank for current): ", ".")
	if err != nil {
		return err
	}
	recursive, err := c.readBool("Recursive? (y/n): ")
	if err != nil {
		return err
	}

	entries, err := c.mgr.List(ctx, path, recursive)
	if err != nil {
		return err
	}
	for _, e := range entries {
		style, label := c.styles.File, "FILE"
		if e.IsDir {
			style, label = c.styles.Dir, "DIR"
		}
		fmt.Fprintln(c.out, style.Render(fmt.Sprintf("%s - %s (%d bytes)", label, e.Path, e.Size)))
	}
	return nil
}

func (c *CLI) cmdCopy(ctx context.Context) error {
	source, err := c.readLine("Source file: ")
	if err != nil {
		return err
	}
	destination, err := c.readLine("Destination: ")
	if err != nil {
		return err
	}
	overwrite, err := c.readBool("Overwrite if exists? (y/n): ")
	if err != nil {
		return err
	}

	if _, err := c.mgr.Copy(ctx, source, destination, overwrite); err != nil {
		return err
	}
	c.success("File copied successfully.")
	return nil
}

func (c *CLI) cmdMove(ctx context.Context) error {
	source, err := c.readLine("Source file: ")
	if err != nil {
		return err
	}
	destination, err := c.readLine("Destination: ")
	if err != nil {
		return err
	}
	overwrite, err := c.readBool("Overwrite if exists? (y/n): ")
	if err != nil {
		return err
	}

	if _, err := c.mgr.Move(ctx, source, destination, overwrite); err != nil {
		return err
	}
	c.success("File moved successfully.")
	return nil
}

func (c *CLI) cmdDelete(ctx context.Context) error {
	path, err := c.readLine("File to delete: ")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Are you sure you want to delete %s? (y/n): ", path)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "Operation cancelled.")
		return nil
	}

	if _, err := c.mgr.DeleteFile(ctx, path); err != nil {
		return err
	}
	c.success("File deleted successfully.")
	return nil
}

func (c *CLI) cmdRename(ctx context.Context) error {
	source, err := c.readLine("File to rename: ")
	if err != nil {
		return err
	}
	newName, err := c.readLine("New name: ")
	if err != nil {
		return err
	}

	if _, err := c.mgr.Rename(ctx, source, newName); err != nil {
		return err
	}
	c.success("File renamed successfully.")
	return nil
}

func (c *CLI) cmdMkdir(ctx context.Context) error {
	path, err := c.readLine("Directory path: ")
	if err != nil {
		return err
	}
	parents, err := c.readBool("Create parent directories if needed? (y/n): ")
	if err != nil {
		return err
	}

	if _, err := c.mgr.CreateDirectory(ctx, path, parents, true); err != nil {
		return err
	}
	c.success("Directory created successfully.")
	return nil
}

func (c *CLI) cmdRmdir(ctx context.Context) error {
	path, err := c.readLine("Directory to delete: ")
	if err != nil {
		return err
	}
	recursive, err := c.readBool("Delete contents recursively? (y/n): ")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Are you sure you want to delete %s? (y/n): ", path)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "Operation cancelled.")
		return nil
	}

	if _, err := c.mgr.DeleteDirectory(ctx, path, recursive); err != nil {
		return err
	}
	c.success("Directory deleted successfully.")
	return nil
}

func (c *CLI) cmdExt(ctx context.Context) error {
	path, err := c.readLine("File path: ")
	if err != nil {
		return err
	}
	newExt, err := c.readLine("New extension (with dot, e.g. '.txt'): ")
	if err != nil {
		return err
	}

	if _, err := c.mgr.ChangeExtension(ctx, path, newExt); err != nil {
		return err
	}
	c.success("Extension changed successfully.")
	return nil
}

func (c *CLI) cmdBulkExt(ctx context.Context) error {
	directory, err := c.readLine("Directory path: ")
	if err != nil {
		return err
	}
	rawExts, err := c.readLine("Current extensions (comma separated, e.g. '.txt,.doc'): ")
	if err != nil {
		return err
	}
	newExt, err := c.readLine("New extension (with dot, e.g. '.md'): ")
	if err != nil {
		return err
	}
	recursive, err := c.readBool("Process subdirectories? (y/n): ")
	if err != nil {
		return err
	}

	stats, err := c.mgr.BulkChangeExtensions(ctx, directory, strings.Split(rawExts, ","), newExt, recursive)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "\nOperation completed:")
	fmt.Fprintf(c.out, "Files processed: %d\n", stats.FilesProcessed)
	fmt.Fprintf(c.out, "Successful changes: %d\n", stats.Succeeded)
	fmt.Fprintf(c.out, "Failed changes: %d\n", stats.Failed)
	return nil
}

func (c *CLI) cmdCreate(ctx context.Context) error {
	path, err := c.readLine("File path: ")
	if err != nil {
		return err
	}
	content, err := c.readLine("Optional content (leave blank for empty file): ")
	if err != nil {
		return err
	}

	if _, err := c.mgr.CreateFile(ctx, path, []byte(content)); err != nil {
		return err
	}
	c.success("File created successfully.")
	return nil
}

func (c *CLI) cmdSize(ctx context.Context) error {
	path, err := c.readLine("Directory path: ")
	if err != nil {
		return err
	}
	recursive, err := c.readBool("Include subdirectories? (y/n): ")
	if err != nil {
		return err
	}

	bytes, err := c.mgr.Size(ctx, path, recursive)
	if err != nil {
		return err
	}

	kb := float64(bytes) / 1024
	mb := kb / 1024
	gb := mb / 1024

	fmt.Fprintf(c.out, "\nSize of %s:\n", path)
	fmt.Fprintf(c.out, "Bytes: %s\n", comma(bytes))
	fmt.Fprintf(c.out, "KB: %s\n", commaFloat(kb, 2))
	fmt.Fprintf(c.out, "MB: %s\n", commaFloat(mb, 2))
	fmt.Fprintf(c.out, "GB: %s\n", commaFloat(gb, 4))
	return nil
}

func (c *CLI) cmdClean(ctx context.Context) error {
	path, err := c.readLine("Directory to clean: ")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Are you sure you want to delete ALL contents of %s? (y/n): ", path)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "Operation cancelled.")
		return nil
	}

	if _, err := c.mgr.Clean(ctx, path); err != nil {
		return err
	}
	c.success("Directory cleaned successfully.")
	return nil
}

func (c *CLI) cmdStat(ctx context.Context) error {
	path, err := c.readLine("File or directory path: ")
	if err != nil {
		return err
	}
	asJSON, err := c.readBool("Output as JSON? (y/n): ")
	if err != nil {
		return err
	}

	info, err := c.mgr.Stat(ctx, path)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := sonic.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, string(data))
		return nil
	}

	kind := "file"
	if info.IsDir {
		kind = "directory"
	}
	fmt.Fprintf(c.out, "\nName: %s\n", info.Name)
	fmt.Fprintf(c.out, "Path: %s\n", info.Path)
	fmt.Fprintf(c.out, "Type: %s\n", kind)
	fmt.Fprintf(c.out, "Size: %s (%s bytes)\n", filesystem.FormatBytes(info.Size), comma(info.Size))
	fmt.Fprintf(c.out, "Mode: %s\n", info.Mode)
	fmt.Fprintf(c.out, "Modified: %s\n", info.Modified.Format(time.RFC3339))
	fmt.Fprintf(c.out, "Created: %s\n", info.Created.Format(time.RFC3339))
	fmt.Fprintf(c.out, "Accessed: %s\n", info.Accessed.Format(time.RFC3339))
	if !info.IsDir {
		// MIME detection is best effort; unreadable content is not an error
		// worth failing the command for.
		if mime, err := c.mgr.MIMEType(ctx, info.Path); err == nil {
			fmt.Fprintf(c.out, "MIME type: %s\n", mime)
		}
	}
	return nil
}

func (c *CLI) cmdTree(ctx context.Context) error {
	path, err := c.readDefault("Directory path (leave blank for current): ", ".")
	if err != nil {
		return err
	}
	depthStr, err := c.readLine("Max depth (leave blank for unlimited): ")
	if err != nil {
		return err
	}
	depth := 0
	if depthStr != "" {
		depth, err = strconv.Atoi(depthStr)
		if err != nil || depth < 0 {
			return fmt.Errorf("invalid depth %q", depthStr)
		}
	}

	rendered, err := c.mgr.Tree(ctx, path, depth)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, rendered)
	return nil
}

func (c *CLI) cmdFind(ctx context.Context) error {
	path, err := c.readDefault("Directory path (leave blank for current): ", ".")
	if err != nil {
		return err
	}
	pattern, err := c.readLine("Pattern (e.g. '*.txt' or '**/*.go'): ")
	if err != nil {
		return err
	}

	matches, err := c.mgr.Find(ctx, path, pattern)
	if err != nil {
		return err
	}
	for _, match := range matches {
		fmt.Fprintln(c.out, match)
	}
	fmt.Fprintf(c.out, "\n%d file(s) found.\n", len(matches))
	return nil
}

func (c *CLI) cmdHash(ctx context.Context) error {
	path, err := c.readLine("File path: ")
	if err != nil {
		return err
	}
	algo, err := c.readDefault("Algorithm (md5/sha256, blank for sha256): ", "sha256")
	if err != nil {
		return err
	}
	algo = strings.ToLower(algo)

	sum, err := c.mgr.Checksum(ctx, path, filesystem.Algorithm(algo))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s: %s\n", algo, sum)
	return nil
}

func (c *CLI) cmdZip(ctx context.Context) error {
	source, err := c.readLine("Directory to archive: ")
	if err != nil {
		return err
	}
	output, err := c.readLine("Output archive path (e.g. 'backup.zip'): ")
	if err != nil {
		return err
	}

	stats, err := c.mgr.ZipCreate(ctx, source, output)
	if err != nil {
		return err
	}
	c.success("Archive created successfully.")
	c.printStats(stats)
	return nil
}

func (c *CLI) cmdTar(ctx context.Context) error {
	source, err := c.readLine("Directory to archive: ")
	if err != nil {
		return err
	}
	output, err := c.readLine("Output archive path (e.g. 'backup.tar.gz'): ")
	if err != nil {
		return err
	}
	compression, err := c.readDefault("Compression (none/gzip/zstd, blank for gzip): ", "gzip")
	if err != nil {
		return err
	}

	stats, err := c.mgr.TarCreate(ctx, source, output, strings.ToLower(compression))
	if err != nil {
		return err
	}
	c.success("Archive created successfully.")
	c.printStats(stats)
	return nil
}

func (c *CLI) cmdUnzip(ctx context.Context) error {
	archive, err := c.readLine("Archive path: ")
	if err != nil {
		return err
	}
	destination, err := c.readLine("Destination directory: ")
	if err != nil {
		return err
	}

	stats, err := c.mgr.Extract(ctx, archive, destination)
	if err != nil {
		return err
	}
	c.success("Archive extracted successfully.")
	c.printStats(stats)
	return nil
}

func (c *CLI) cmdHelp(context.Context) error {
	fmt.Fprintln(c.out, "\nAvailable commands:")
	for _, cmd := range c.commands {
		fmt.Fprintf(c.out, "%s - %s\n", cmd.name, cmd.desc)
	}
	return nil
}

func (c *CLI) cmdExit(context.Context) error {
	fmt.Fprintln(c.out, "Goodbye!")
	return errQuit
}
