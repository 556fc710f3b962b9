// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for pool events
const eventTableSchema = `
create table if not exists event (
	blockNumber integer not null,
	eventIndex integer not null,
	name text not null,
	account blob(20),
	data blob,
	primary key (blockNumber, eventIndex)
);

CREATE INDEX if not exists nameIndex on event(name);
CREATE INDEX if not exists accountIndex on event(account);
`
