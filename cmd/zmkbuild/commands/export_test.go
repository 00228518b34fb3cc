package commands

// SetGetwd replaces the working directory lookup.
func (c *CLI) SetGetwd(getwd func() (string, error)) {
	c.getwd = getwd
}
