// Package config provides configuration parsing for weave.
//
// The configuration is stored in weave.json. Every field is optional;
// missing values fall back to defaults.
//
// # Configuration File Structure
//
//	{
//	  "app": "todo",
//	  "server": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "scheduler": {
//	    "interval": "16ms",
//	    "slice": "8ms",
//	    "yieldThreshold": "1ms"
//	  },
//	  "debug": {
//	    "hookOrder": true
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "weave"
//	  },
//	  "export": {
//	    "dir": "dist",
//	    "s3": {
//	      "bucket": "snapshots",
//	      "prefix": "weave/",
//	      "region": "eu-west-1"
//	    }
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
