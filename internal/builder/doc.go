/*
Package builder constructs the canonical Markov model from a loaded graph
description. It acts as the bridge between the format-agnostic description
(the 'config' package) and the numeric solver (the 'solver' package).

The primary artifact produced by this package is a *model.Model.

Model construction is a multi-pass process:

 1. State Creation: every declared node becomes a state, in declaration
    order, carrying its class, performance and capacity annotations.

 2. Implicit States: edge endpoints that were never declared become
    unannotated states, in edge declaration order (source before
    destination).

 3. Transition Linking: every edge's rate is resolved (see the 'rates'
    package) and written into the rate matrix in declaration order. A later
    edge between the same ordered pair of states overwrites the earlier one.

Problems found along the way (unresolvable rates, malformed annotations) are
collected instead of stopping at the first one, so a modeler sees all of
them from a single run. What happens to an edge without a rate is decided by
the MissingRatePolicy in Options.
*/
package builder
